package search

import (
	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/keyword"
	"github.com/blevesearch/bleve/v2/analysis/lang/en"
	"github.com/blevesearch/bleve/v2/mapping"
)

// mappingVersion changes whenever buildIndexMapping does; a mismatch on
// startup rebuilds the index.
const mappingVersion = "1"

func buildIndexMapping() mapping.IndexMapping {
	indexMapping := bleve.NewIndexMapping()
	indexMapping.DefaultAnalyzer = en.AnalyzerName

	doc := bleve.NewDocumentMapping()

	text := func(store, vectors bool) *mapping.FieldMapping {
		fm := bleve.NewTextFieldMapping()
		fm.Analyzer = en.AnalyzerName
		fm.Store = store
		fm.IncludeTermVectors = vectors
		return fm
	}
	exact := func(store bool) *mapping.FieldMapping {
		fm := bleve.NewTextFieldMapping()
		fm.Analyzer = keyword.Name
		fm.Store = store
		return fm
	}
	number := func() *mapping.FieldMapping {
		fm := bleve.NewNumericFieldMapping()
		fm.Store = true
		return fm
	}

	doc.AddFieldMappingsAt("title", text(true, true))
	doc.AddFieldMappingsAt("authors", text(true, true))
	doc.AddFieldMappingsAt("description", text(false, true))
	doc.AddFieldMappingsAt("id", exact(false))
	doc.AddFieldMappingsAt("isbn", exact(true))
	doc.AddFieldMappingsAt("subjects", exact(true))
	doc.AddFieldMappingsAt("page_count", number())
	doc.AddFieldMappingsAt("created_at", number())

	indexMapping.AddDocumentMapping("_default", doc)
	return indexMapping
}

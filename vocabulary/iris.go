// Package vocabulary defines the well-known RDF/OWL IRIs and the prefix
// table used to qualify ontology terms into short prefix:local names.
package vocabulary

// Namespace IRIs for the standard vocabularies consumed by the extractor.
const (
	RDFNamespace  = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"
	RDFSNamespace = "http://www.w3.org/2000/01/rdf-schema#"
	OWLNamespace  = "http://www.w3.org/2002/07/owl#"
)

// Well-known term IRIs.
const (
	// RDFType is the rdf:type predicate used to select subjects by kind.
	RDFType = RDFNamespace + "type"

	// RDFSLabel is the rdfs:label predicate carrying human-readable names.
	RDFSLabel = RDFSNamespace + "label"

	// OWLClass marks a subject as an OWL class.
	OWLClass = OWLNamespace + "Class"

	// OWLObjectProperty marks a subject as an OWL object property.
	OWLObjectProperty = OWLNamespace + "ObjectProperty"

	// OWLImports links an ontology to the ontologies it imports.
	OWLImports = OWLNamespace + "imports"
)

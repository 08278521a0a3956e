package model

// Element shapes returned by the asset manager exchange operations.
type (
	ExternalReferenceElement     = MetadataElement[*ExternalReferenceProperties]
	ExternalReferenceLinkElement = RelatedElement[*ExternalReferenceLinkProperties, *ExternalReferenceProperties]

	GlossaryElement         = MetadataElement[*GlossaryProperties]
	GlossaryCategoryElement = MetadataElement[*GlossaryCategoryProperties]
	GlossaryTermElement     = MetadataElement[*GlossaryTermProperties]
	RelatedTermElement      = RelatedElement[*GlossaryTermRelationship, *GlossaryTermProperties]

	ProcessElement = MetadataElement[*ProcessProperties]
	PortElement    = MetadataElement[*PortProperties]

	DataFlowElement       = RelationshipElement[*DataFlowProperties]
	ControlFlowElement    = RelationshipElement[*ControlFlowProperties]
	ProcessCallElement    = RelationshipElement[*ProcessCallProperties]
	LineageMappingElement = RelationshipElement[*LineageMappingProperties]
)

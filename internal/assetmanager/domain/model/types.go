package model

// Entity type names
const (
	TypeReferenceable             = "Referenceable"
	TypeAsset                     = "Asset"
	TypeGlossary                  = "Glossary"
	TypeGlossaryCategory          = "GlossaryCategory"
	TypeGlossaryTerm              = "GlossaryTerm"
	TypeControlledGlossaryTerm    = "ControlledGlossaryTerm"
	TypeExternalReference         = "ExternalReference"
	TypeRelatedMedia              = "RelatedMedia"
	TypeProcess                   = "Process"
	TypeDeployedSoftwareComponent = "DeployedSoftwareComponent"
	TypeTransientEmbeddedProcess  = "TransientEmbeddedProcess"
	TypePort                      = "Port"
	TypePortImplementation        = "PortImplementation"
	TypePortAlias                 = "PortAlias"
)

// Relationship type names
const (
	RelExternalReferenceLink = "ExternalReferenceLink"
	RelCategoryAnchor        = "CategoryAnchor"
	RelTermAnchor            = "TermAnchor"
	RelCategoryHierarchyLink = "CategoryHierarchyLink"
	RelTermCategorization    = "TermCategorization"
	RelProcessHierarchy      = "ProcessHierarchy"
	RelProcessPort           = "ProcessPort"
	RelPortDelegation        = "PortDelegation"
	RelDataFlow              = "DataFlow"
	RelControlFlow           = "ControlFlow"
	RelProcessCall           = "ProcessCall"
	RelLineageMapping        = "LineageMapping"

	RelSynonym         = "Synonym"
	RelAntonym         = "Antonym"
	RelPreferredTerm   = "PreferredTerm"
	RelReplacementTerm = "ReplacementTerm"
	RelTranslation     = "Translation"
	RelISARelationship = "ISARelationship"
	RelValidValue      = "ValidValue"
	RelRelatedTerm     = "RelatedTerm"
	RelUsedInContext   = "UsedInContext"
)

// Classification names
const (
	ClassTaxonomy            = "Taxonomy"
	ClassCanonicalVocabulary = "CanonicalVocabulary"
	ClassSecurityTags        = "SecurityTags"
	ClassMemento             = "Memento"
	ClassAssetZoneMembership = "AssetZoneMembership"
	ClassRootCategory        = "RootCategory"
)

var superTypes = map[string]string{
	TypeAsset:                     TypeReferenceable,
	TypeGlossary:                  TypeReferenceable,
	TypeGlossaryCategory:          TypeReferenceable,
	TypeGlossaryTerm:              TypeReferenceable,
	TypeControlledGlossaryTerm:    TypeGlossaryTerm,
	TypeExternalReference:         TypeReferenceable,
	TypeRelatedMedia:              TypeExternalReference,
	TypeProcess:                   TypeAsset,
	TypeDeployedSoftwareComponent: TypeProcess,
	TypeTransientEmbeddedProcess:  TypeProcess,
	TypePort:                      TypeReferenceable,
	TypePortImplementation:        TypePort,
	TypePortAlias:                 TypePort,
}

var termRelationshipTypes = []string{
	RelSynonym,
	RelAntonym,
	RelPreferredTerm,
	RelReplacementTerm,
	RelTranslation,
	RelISARelationship,
	RelValidValue,
	RelRelatedTerm,
	RelUsedInContext,
}

var lineageRelationshipTypes = []string{RelDataFlow, RelControlFlow, RelProcessCall, RelLineageMapping}

// IsKnownType reports whether typeName is registered.
func IsKnownType(typeName string) bool {
	if typeName == TypeReferenceable {
		return true
	}
	_, ok := superTypes[typeName]
	return ok
}

// IsTypeOf reports whether typeName is expected or one of its subtypes.
func IsTypeOf(typeName, expected string) bool {
	for t := typeName; t != ""; t = superTypes[t] {
		if t == expected {
			return true
		}
	}
	return false
}

// SuperTypeNames lists the supertypes of typeName, nearest first.
func SuperTypeNames(typeName string) []string {
	var names []string
	for t := superTypes[typeName]; t != ""; t = superTypes[t] {
		names = append(names, t)
	}
	return names
}

// SubTypeNames lists typeName and every registered subtype of it.
func SubTypeNames(typeName string) []string {
	names := []string{typeName}
	for t := range superTypes {
		if t != typeName && IsTypeOf(t, typeName) {
			names = append(names, t)
		}
	}
	return names
}

// IsTermRelationshipType reports whether name is a supported glossary term relationship.
func IsTermRelationshipType(name string) bool {
	for _, t := range termRelationshipTypes {
		if t == name {
			return true
		}
	}
	return false
}

// TermRelationshipTypes returns the supported glossary term relationships.
func TermRelationshipTypes() []string {
	return append([]string(nil), termRelationshipTypes...)
}

// LineageRelationshipTypes returns the relationship types that make an element part of lineage.
func LineageRelationshipTypes() []string {
	return append([]string(nil), lineageRelationshipTypes...)
}

package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsTypeOf_Subtypes(t *testing.T) {
	assert.True(t, IsTypeOf(TypeDeployedSoftwareComponent, TypeProcess))
	assert.True(t, IsTypeOf(TypeProcess, TypeAsset))
	assert.True(t, IsTypeOf(TypeControlledGlossaryTerm, TypeGlossaryTerm))
	assert.True(t, IsTypeOf(TypePortAlias, TypeReferenceable))
	assert.False(t, IsTypeOf(TypeGlossary, TypeProcess))
	assert.False(t, IsTypeOf("Unknown", TypeReferenceable))

	assert.Equal(t, []string{TypeProcess, TypeAsset, TypeReferenceable}, SuperTypeNames(TypeDeployedSoftwareComponent))
	assert.ElementsMatch(t, []string{TypePort, TypePortImplementation, TypePortAlias}, SubTypeNames(TypePort))
	assert.True(t, IsKnownType(TypeReferenceable))
	assert.False(t, IsKnownType("Table"))
}

func TestIsTermRelationshipType(t *testing.T) {
	assert.True(t, IsTermRelationshipType(RelSynonym))
	assert.False(t, IsTermRelationshipType(RelDataFlow))
	assert.Len(t, LineageRelationshipTypes(), 4)
}

func TestIsEffective(t *testing.T) {
	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	before := from.Add(-time.Hour)
	inside := from.Add(time.Hour)

	assert.True(t, IsEffective(&from, &to, nil))
	assert.False(t, IsEffective(&from, &to, &before))
	assert.True(t, IsEffective(&from, &to, &inside))
	assert.True(t, IsEffective(&from, &to, &from))
	assert.False(t, IsEffective(&from, &to, &to))
	assert.True(t, IsEffective(nil, nil, &before))
}

func TestEntity_Classifications(t *testing.T) {
	e := &Entity{
		Properties:      map[string]interface{}{"qualifiedName": "glossary::sales"},
		Classifications: []Classification{{Name: ClassTaxonomy}, {Name: ClassSecurityTags}},
	}
	assert.Equal(t, "glossary::sales", e.QualifiedName())
	assert.NotNil(t, e.Classification(ClassTaxonomy))
	assert.Nil(t, e.Classification(ClassMemento))
	assert.True(t, e.RemoveClassification(ClassTaxonomy))
	assert.False(t, e.RemoveClassification(ClassTaxonomy))
	assert.Len(t, e.Classifications, 1)
}

func TestPolymorphicProperties_DecodesByClass(t *testing.T) {
	body := []byte(`{"class":"GlossaryProperties","qualifiedName":"glossary::sales","displayName":"Sales","typeName":"Glossary"}`)

	var p PolymorphicProperties
	require.NoError(t, json.Unmarshal(body, &p))
	assert.Equal(t, "GlossaryProperties", p.ClassName())

	glossary, ok := p.Unwrap().(*GlossaryProperties)
	require.True(t, ok)
	assert.Equal(t, "glossary::sales", glossary.QualifiedName)
	assert.Equal(t, "Sales", glossary.DisplayName)
	assert.Equal(t, "Glossary", glossary.TypeName)
}

func TestPolymorphicProperties_UnknownClass(t *testing.T) {
	var p PolymorphicProperties
	require.NoError(t, json.Unmarshal([]byte(`{"class":"TableProperties","qualifiedName":"x"}`), &p))
	assert.Equal(t, "TableProperties", p.ClassName())
	assert.Nil(t, p.Unwrap())

	var nilProps *PolymorphicProperties
	assert.Nil(t, nilProps.Unwrap())
	assert.Equal(t, "", nilProps.ClassName())
}

func TestPolymorphicProperties_MarshalAddsClass(t *testing.T) {
	wrapped := Wrap(&PortProperties{
		ReferenceableProperties: ReferenceableProperties{QualifiedName: "port::in"},
		PortType:                PortTypeInput,
	})

	data, err := json.Marshal(wrapped)
	require.NoError(t, err)

	var fields map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &fields))
	assert.Equal(t, "PortProperties", fields["class"])
	assert.Equal(t, "port::in", fields["qualifiedName"])
	assert.Equal(t, "INPUT_PORT", fields["portType"])
}

func TestEncodeDecodeProperties_SkipsEffectivityAndTypeName(t *testing.T) {
	from := time.Now().UTC()
	props := &ProcessProperties{
		ReferenceableProperties: ReferenceableProperties{
			Effectivity:   Effectivity{EffectiveFrom: &from},
			QualifiedName: "process::load",
			TypeName:      TypeDeployedSoftwareComponent,
		},
		Name:   "load",
		Status: ProcessStatusActive,
	}

	bag, err := EncodeProperties(props)
	require.NoError(t, err)
	assert.Equal(t, "process::load", bag["qualifiedName"])
	assert.Equal(t, "ACTIVE", bag["processStatus"])
	assert.NotContains(t, bag, "effectiveFrom")
	assert.NotContains(t, bag, "typeName")
	assert.NotContains(t, bag, "description")

	var decoded ProcessProperties
	require.NoError(t, DecodeProperties(bag, &decoded))
	assert.Equal(t, "load", decoded.Name)
	assert.Equal(t, ProcessStatusActive, decoded.Status)
	assert.Nil(t, decoded.EffectiveFrom)
}

func TestMergeProperties(t *testing.T) {
	base := map[string]interface{}{"qualifiedName": "a", "description": "old"}
	merged := MergeProperties(base, map[string]interface{}{"description": "new", "usage": "u"})
	assert.Equal(t, "a", merged["qualifiedName"])
	assert.Equal(t, "new", merged["description"])
	assert.Equal(t, "u", merged["usage"])
	assert.Equal(t, "old", base["description"])
}

func TestToElement_FillsEntityLevelFields(t *testing.T) {
	to := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
	e := &Entity{
		GUID:                 "guid-1",
		TypeName:             TypeControlledGlossaryTerm,
		Properties:           map[string]interface{}{"qualifiedName": "term::revenue", "status": "DRAFT"},
		HomeAssetManagerGUID: "am-1",
		HomeAssetManagerName: "catalog",
		EffectiveTo:          &to,
		Version:              3,
		Classifications:      []Classification{{Name: ClassSecurityTags}},
	}

	element, err := ToElement[GlossaryTermProperties](e)
	require.NoError(t, err)
	assert.Equal(t, "guid-1", element.ElementHeader.GUID)
	assert.Equal(t, OriginExternalSource, element.ElementHeader.Origin.OriginCategory)
	assert.Equal(t, "am-1", element.ElementHeader.Origin.HomeMetadataCollectionID)
	assert.Equal(t, []string{TypeGlossaryTerm, TypeReferenceable}, element.ElementHeader.Type.SuperTypeNames)
	assert.Equal(t, int64(3), element.ElementHeader.Versions.Version)
	assert.Len(t, element.ElementHeader.Classifications, 1)
	assert.Equal(t, TermStatusDraft, element.Properties.Status)
	assert.Equal(t, TypeControlledGlossaryTerm, element.Properties.TypeName)
	assert.Equal(t, &to, element.Properties.EffectiveTo)
}

func TestToRelatedElement(t *testing.T) {
	r := &Relationship{GUID: "rel-1", TypeName: RelSynonym, End1GUID: "t1", End2GUID: "t2",
		Properties: map[string]interface{}{"confidence": 80}}
	other := &Entity{GUID: "t2", TypeName: TypeGlossaryTerm, Properties: map[string]interface{}{"qualifiedName": "term::sales"}}

	related, err := ToRelatedElement[GlossaryTermRelationship, GlossaryTermProperties](r, other)
	require.NoError(t, err)
	assert.Equal(t, "rel-1", related.RelationshipHeader.GUID)
	assert.Equal(t, 80, related.RelationshipProperties.Confidence)
	assert.Equal(t, "term::sales", related.RelatedElement.Properties.QualifiedName)

	rel, err := ToRelationshipElement[DataFlowProperties](&Relationship{GUID: "df", End1GUID: "a", End2GUID: "b"}, nil, other)
	require.NoError(t, err)
	assert.Equal(t, "a", rel.End1.GUID)
	assert.Equal(t, "term::sales", rel.End2.UniqueName)
}

func TestStatusValidation(t *testing.T) {
	assert.True(t, TermStatusApproved.Valid())
	assert.False(t, GlossaryTermStatus("LOST").Valid())
	assert.True(t, ProcessStatusDisabled.Valid())
	assert.False(t, ProcessStatus("").Valid())
	assert.True(t, ContainmentOwned.Valid())
	assert.True(t, PortType("").Valid())
	assert.False(t, PortType("SIDE").Valid())
}

func TestNewProperties(t *testing.T) {
	p, err := NewProperties("SecurityTagsProperties")
	require.NoError(t, err)
	assert.IsType(t, &SecurityTagsProperties{}, p)

	_, err = NewProperties("Nope")
	assert.Error(t, err)
}

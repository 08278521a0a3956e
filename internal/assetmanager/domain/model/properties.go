package model

import (
	"fmt"
	"reflect"
	"time"
)

// Properties is implemented by every property class that can travel in a polymorphic
// request field. PropertiesClass names the class used as the JSON discriminator.
type Properties interface {
	PropertiesClass() string
}

// Effectivity bounds when an element or relationship is visible.
type Effectivity struct {
	EffectiveFrom *time.Time `json:"effectiveFrom,omitempty"`
	EffectiveTo   *time.Time `json:"effectiveTo,omitempty"`
}

func (e *Effectivity) effectivity() *Effectivity { return e }

type effective interface {
	effectivity() *Effectivity
}

// ReferenceableProperties is the common base of element properties.
type ReferenceableProperties struct {
	Effectivity          `bson:"-"`
	QualifiedName        string                 `json:"qualifiedName,omitempty" bson:"qualifiedName,omitempty"`
	AdditionalProperties map[string]string      `json:"additionalProperties,omitempty" bson:"additionalProperties,omitempty"`
	ExtendedProperties   map[string]interface{} `json:"extendedProperties,omitempty" bson:"extendedProperties,omitempty"`
	// TypeName selects a subtype of the family's default type.
	TypeName string `json:"typeName,omitempty" bson:"-"`
}

func (r *ReferenceableProperties) referenceable() *ReferenceableProperties { return r }

type referenceable interface {
	referenceable() *ReferenceableProperties
}

// IsNil reports whether p is nil or a nil pointer held in an interface.
func IsNil(p interface{}) bool {
	if p == nil {
		return true
	}
	v := reflect.ValueOf(p)
	return v.Kind() == reflect.Ptr && v.IsNil()
}

// ReferenceableOf returns the referenceable base of p when it has one.
func ReferenceableOf(p interface{}) (*ReferenceableProperties, bool) {
	if IsNil(p) {
		return nil, false
	}
	if r, ok := p.(referenceable); ok {
		return r.referenceable(), true
	}
	return nil, false
}

// EffectivityOf returns the effectivity window of p when it has one.
func EffectivityOf(p interface{}) (*Effectivity, bool) {
	if IsNil(p) {
		return nil, false
	}
	if e, ok := p.(effective); ok {
		return e.effectivity(), true
	}
	return nil, false
}

// TemplateProperties override the identifying properties of an element copied from a template.
type TemplateProperties struct {
	QualifiedName string `json:"qualifiedName"`
	DisplayName   string `json:"displayName,omitempty"`
	Description   string `json:"description,omitempty"`
}

func (*TemplateProperties) PropertiesClass() string { return "TemplateProperties" }

// ---- glossaries

type GlossaryProperties struct {
	ReferenceableProperties `bson:",inline"`
	DisplayName             string `json:"displayName,omitempty" bson:"displayName,omitempty"`
	Description             string `json:"description,omitempty" bson:"description,omitempty"`
	Language                string `json:"language,omitempty" bson:"language,omitempty"`
	Usage                   string `json:"usage,omitempty" bson:"usage,omitempty"`
}

func (*GlossaryProperties) PropertiesClass() string { return "GlossaryProperties" }

type TaxonomyProperties struct {
	OrganizingPrinciple string `json:"organizingPrinciple,omitempty" bson:"organizingPrinciple,omitempty"`
}

func (*TaxonomyProperties) PropertiesClass() string { return "TaxonomyProperties" }

type CanonicalVocabularyProperties struct {
	Scope string `json:"scope,omitempty" bson:"scope,omitempty"`
}

func (*CanonicalVocabularyProperties) PropertiesClass() string {
	return "CanonicalVocabularyProperties"
}

type GlossaryCategoryProperties struct {
	ReferenceableProperties `bson:",inline"`
	DisplayName             string `json:"displayName,omitempty" bson:"displayName,omitempty"`
	Description             string `json:"description,omitempty" bson:"description,omitempty"`
}

func (*GlossaryCategoryProperties) PropertiesClass() string { return "GlossaryCategoryProperties" }

type GlossaryTermProperties struct {
	ReferenceableProperties `bson:",inline"`
	DisplayName             string `json:"displayName,omitempty" bson:"displayName,omitempty"`
	Summary                 string `json:"summary,omitempty" bson:"summary,omitempty"`
	Description             string `json:"description,omitempty" bson:"description,omitempty"`
	Examples                string `json:"examples,omitempty" bson:"examples,omitempty"`
	Abbreviation            string `json:"abbreviation,omitempty" bson:"abbreviation,omitempty"`
	Usage                   string `json:"usage,omitempty" bson:"usage,omitempty"`
	// Status is maintained through the term status operations.
	Status GlossaryTermStatus `json:"status,omitempty" bson:"status,omitempty"`
}

func (*GlossaryTermProperties) PropertiesClass() string { return "GlossaryTermProperties" }

// GlossaryTermStatus is the lifecycle status of a glossary term.
type GlossaryTermStatus string

const (
	TermStatusDraft      GlossaryTermStatus = "DRAFT"
	TermStatusPrepared   GlossaryTermStatus = "PREPARED"
	TermStatusProposed   GlossaryTermStatus = "PROPOSED"
	TermStatusApproved   GlossaryTermStatus = "APPROVED"
	TermStatusRejected   GlossaryTermStatus = "REJECTED"
	TermStatusActive     GlossaryTermStatus = "ACTIVE"
	TermStatusDeprecated GlossaryTermStatus = "DEPRECATED"
	TermStatusOther      GlossaryTermStatus = "OTHER"
)

// Valid reports whether s is a known term status.
func (s GlossaryTermStatus) Valid() bool {
	switch s {
	case TermStatusDraft, TermStatusPrepared, TermStatusProposed, TermStatusApproved,
		TermStatusRejected, TermStatusActive, TermStatusDeprecated, TermStatusOther:
		return true
	}
	return false
}

// GlossaryTermCategorization describes a term's membership of a category.
type GlossaryTermCategorization struct {
	Effectivity `bson:"-"`
	Description string `json:"description,omitempty" bson:"description,omitempty"`
	Status      string `json:"status,omitempty" bson:"status,omitempty"`
}

func (*GlossaryTermCategorization) PropertiesClass() string { return "GlossaryTermCategorization" }

// GlossaryTermRelationship holds the properties shared by the term-to-term relationships.
type GlossaryTermRelationship struct {
	Effectivity `bson:"-"`
	Expression  string `json:"expression,omitempty" bson:"expression,omitempty"`
	Confidence  int    `json:"confidence,omitempty" bson:"confidence,omitempty"`
	Description string `json:"description,omitempty" bson:"description,omitempty"`
	Status      string `json:"status,omitempty" bson:"status,omitempty"`
	Steward     string `json:"steward,omitempty" bson:"steward,omitempty"`
	Source      string `json:"source,omitempty" bson:"source,omitempty"`
}

func (*GlossaryTermRelationship) PropertiesClass() string { return "GlossaryTermRelationship" }

// ---- external references

type ExternalReferenceProperties struct {
	ReferenceableProperties `bson:",inline"`
	ResourceID              string `json:"resourceId,omitempty" bson:"resourceId,omitempty"`
	DisplayName             string `json:"displayName,omitempty" bson:"displayName,omitempty"`
	URL                     string `json:"url,omitempty" bson:"url,omitempty"`
	Version                 string `json:"version,omitempty" bson:"version,omitempty"`
	ResourceDescription     string `json:"resourceDescription,omitempty" bson:"resourceDescription,omitempty"`
	OwningOrganization      string `json:"owningOrganization,omitempty" bson:"owningOrganization,omitempty"`
}

func (*ExternalReferenceProperties) PropertiesClass() string { return "ExternalReferenceProperties" }

type ExternalReferenceLinkProperties struct {
	Effectivity     `bson:"-"`
	LinkID          string `json:"linkId,omitempty" bson:"linkId,omitempty"`
	LinkDescription string `json:"linkDescription,omitempty" bson:"linkDescription,omitempty"`
	Pages           string `json:"pages,omitempty" bson:"pages,omitempty"`
}

func (*ExternalReferenceLinkProperties) PropertiesClass() string {
	return "ExternalReferenceLinkProperties"
}

// ---- processes and ports

type ProcessProperties struct {
	ReferenceableProperties `bson:",inline"`
	Name                    string `json:"name,omitempty" bson:"name,omitempty"`
	DisplayName             string `json:"displayName,omitempty" bson:"displayName,omitempty"`
	VersionIdentifier       string `json:"versionIdentifier,omitempty" bson:"versionIdentifier,omitempty"`
	Description             string `json:"description,omitempty" bson:"description,omitempty"`
	Formula                 string `json:"formula,omitempty" bson:"formula,omitempty"`
	FormulaType             string `json:"formulaType,omitempty" bson:"formulaType,omitempty"`
	ImplementationLanguage  string `json:"implementationLanguage,omitempty" bson:"implementationLanguage,omitempty"`
	// Status is maintained through the process status operations.
	Status ProcessStatus `json:"processStatus,omitempty" bson:"processStatus,omitempty"`
}

func (*ProcessProperties) PropertiesClass() string { return "ProcessProperties" }

type ProcessStatus string

const (
	ProcessStatusUnknown  ProcessStatus = "UNKNOWN"
	ProcessStatusDraft    ProcessStatus = "DRAFT"
	ProcessStatusProposed ProcessStatus = "PROPOSED"
	ProcessStatusApproved ProcessStatus = "APPROVED"
	ProcessStatusActive   ProcessStatus = "ACTIVE"
	ProcessStatusDisabled ProcessStatus = "DISABLED"
	ProcessStatusDeleted  ProcessStatus = "DELETED"
	ProcessStatusOther    ProcessStatus = "OTHER"
)

func (s ProcessStatus) Valid() bool {
	switch s {
	case ProcessStatusUnknown, ProcessStatusDraft, ProcessStatusProposed, ProcessStatusApproved,
		ProcessStatusActive, ProcessStatusDisabled, ProcessStatusDeleted, ProcessStatusOther:
		return true
	}
	return false
}

// ProcessContainmentType describes how a parent process holds a child.
type ProcessContainmentType string

const (
	ContainmentOwned ProcessContainmentType = "OWNED"
	ContainmentUsed  ProcessContainmentType = "USED"
	ContainmentOther ProcessContainmentType = "OTHER"
)

func (c ProcessContainmentType) Valid() bool {
	return c == ContainmentOwned || c == ContainmentUsed || c == ContainmentOther
}

type ProcessHierarchyProperties struct {
	Effectivity     `bson:"-"`
	ContainmentType ProcessContainmentType `json:"containmentType,omitempty" bson:"containmentType,omitempty"`
}

func (*ProcessHierarchyProperties) PropertiesClass() string { return "ProcessHierarchyProperties" }

type PortType string

const (
	PortTypeInput  PortType = "INPUT_PORT"
	PortTypeOutput PortType = "OUTPUT_PORT"
	PortTypeInOut  PortType = "INOUT_PORT"
	PortTypeOutIn  PortType = "OUTIN_PORT"
	PortTypeOther  PortType = "OTHER"
)

func (p PortType) Valid() bool {
	switch p {
	case "", PortTypeInput, PortTypeOutput, PortTypeInOut, PortTypeOutIn, PortTypeOther:
		return true
	}
	return false
}

type PortProperties struct {
	ReferenceableProperties `bson:",inline"`
	DisplayName             string   `json:"displayName,omitempty" bson:"displayName,omitempty"`
	PortType                PortType `json:"portType,omitempty" bson:"portType,omitempty"`
}

func (*PortProperties) PropertiesClass() string { return "PortProperties" }

// ---- lineage relationships

type DataFlowProperties struct {
	Effectivity   `bson:"-"`
	QualifiedName string `json:"qualifiedName,omitempty" bson:"qualifiedName,omitempty"`
	Description   string `json:"description,omitempty" bson:"description,omitempty"`
	Formula       string `json:"formula,omitempty" bson:"formula,omitempty"`
	FormulaType   string `json:"formulaType,omitempty" bson:"formulaType,omitempty"`
}

func (*DataFlowProperties) PropertiesClass() string { return "DataFlowProperties" }

type ControlFlowProperties struct {
	Effectivity    `bson:"-"`
	QualifiedName  string `json:"qualifiedName,omitempty" bson:"qualifiedName,omitempty"`
	Description    string `json:"description,omitempty" bson:"description,omitempty"`
	Guard          string `json:"guard,omitempty" bson:"guard,omitempty"`
	MandatoryGuard bool   `json:"mandatoryGuard,omitempty" bson:"mandatoryGuard,omitempty"`
}

func (*ControlFlowProperties) PropertiesClass() string { return "ControlFlowProperties" }

type ProcessCallProperties struct {
	Effectivity   `bson:"-"`
	QualifiedName string `json:"qualifiedName,omitempty" bson:"qualifiedName,omitempty"`
	Description   string `json:"description,omitempty" bson:"description,omitempty"`
	Formula       string `json:"formula,omitempty" bson:"formula,omitempty"`
	FormulaType   string `json:"formulaType,omitempty" bson:"formulaType,omitempty"`
	LineNumber    int    `json:"lineNumber,omitempty" bson:"lineNumber,omitempty"`
}

func (*ProcessCallProperties) PropertiesClass() string { return "ProcessCallProperties" }

type LineageMappingProperties struct {
	Effectivity `bson:"-"`
	Description string `json:"description,omitempty" bson:"description,omitempty"`
}

func (*LineageMappingProperties) PropertiesClass() string { return "LineageMappingProperties" }

// ---- governance classifications

type SecurityTagsProperties struct {
	Effectivity        `bson:"-"`
	SecurityLabels     []string               `json:"securityLabels,omitempty" bson:"securityLabels,omitempty"`
	SecurityProperties map[string]interface{} `json:"securityProperties,omitempty" bson:"securityProperties,omitempty"`
	AccessGroups       map[string][]string    `json:"accessGroups,omitempty" bson:"accessGroups,omitempty"`
}

func (*SecurityTagsProperties) PropertiesClass() string { return "SecurityTagsProperties" }

// AssetZoneMembershipProperties lists the governance zones an element is visible in.
type AssetZoneMembershipProperties struct {
	ZoneMembership []string `json:"zoneMembership,omitempty" bson:"zoneMembership,omitempty"`
}

func (*AssetZoneMembershipProperties) PropertiesClass() string {
	return "AssetZoneMembershipProperties"
}

type propertiesFactory func() Properties

var propertiesClasses = map[string]propertiesFactory{
	"TemplateProperties":              func() Properties { return &TemplateProperties{} },
	"GlossaryProperties":              func() Properties { return &GlossaryProperties{} },
	"TaxonomyProperties":              func() Properties { return &TaxonomyProperties{} },
	"CanonicalVocabularyProperties":   func() Properties { return &CanonicalVocabularyProperties{} },
	"GlossaryCategoryProperties":      func() Properties { return &GlossaryCategoryProperties{} },
	"GlossaryTermProperties":          func() Properties { return &GlossaryTermProperties{} },
	"GlossaryTermCategorization":      func() Properties { return &GlossaryTermCategorization{} },
	"GlossaryTermRelationship":        func() Properties { return &GlossaryTermRelationship{} },
	"ExternalReferenceProperties":     func() Properties { return &ExternalReferenceProperties{} },
	"ExternalReferenceLinkProperties": func() Properties { return &ExternalReferenceLinkProperties{} },
	"ProcessProperties":               func() Properties { return &ProcessProperties{} },
	"ProcessHierarchyProperties":      func() Properties { return &ProcessHierarchyProperties{} },
	"PortProperties":                  func() Properties { return &PortProperties{} },
	"DataFlowProperties":              func() Properties { return &DataFlowProperties{} },
	"ControlFlowProperties":           func() Properties { return &ControlFlowProperties{} },
	"ProcessCallProperties":           func() Properties { return &ProcessCallProperties{} },
	"LineageMappingProperties":        func() Properties { return &LineageMappingProperties{} },
	"SecurityTagsProperties":          func() Properties { return &SecurityTagsProperties{} },
	"AssetZoneMembershipProperties":   func() Properties { return &AssetZoneMembershipProperties{} },
}

// NewProperties returns an empty instance of the named properties class.
func NewProperties(class string) (Properties, error) {
	factory, ok := propertiesClasses[class]
	if !ok {
		return nil, fmt.Errorf("unknown properties class %q", class)
	}
	return factory(), nil
}

// Package matter defines the in-memory domain model for the Matter (CSA)
// cluster/device-type XML description: clusters, attributes, commands,
// events, bitmaps, enums, structs, and device types, plus the conformance,
// constraint, access, and quality sub-models shared by all of them.
package matter

// ValueKind tags which arm of Value is populated, modeling the
// VariableType/DefaultType tagged union (u64 | i64 | f64 | string | bool |
// list<ArrayItem> | null) as an explicit sum type instead of interface{}.
type ValueKind int

// ValueKind arms.
const (
	KindNull ValueKind = iota
	KindUint
	KindInt
	KindFloat
	KindString
	KindBool
	KindList
)

// Value is a tagged union used for constraint bounds/allowed-values and for
// attribute/command-field/event default values.
type Value struct {
	Kind ValueKind
	U    uint64
	I    int64
	F    float64
	S    string
	B    bool
	List []Value
}

// NullValue returns the null arm.
func NullValue() Value { return Value{Kind: KindNull} }

// UintValue returns the u64 arm.
func UintValue(v uint64) Value { return Value{Kind: KindUint, U: v} }

// IntValue returns the i64 arm.
func IntValue(v int64) Value { return Value{Kind: KindInt, I: v} }

// FloatValue returns the f64 arm.
func FloatValue(v float64) Value { return Value{Kind: KindFloat, F: v} }

// StringValue returns the string arm.
func StringValue(v string) Value { return Value{Kind: KindString, S: v} }

// BoolValue returns the bool arm.
func BoolValue(v bool) Value { return Value{Kind: KindBool, B: v} }

// ListValue returns the list arm.
func ListValue(v []Value) Value { return Value{Kind: KindList, List: v} }

// IsNull reports whether the value is the null arm (the zero Value is null).
func (v Value) IsNull() bool { return v.Kind == KindNull }

// CommandDirection is the direction tag for Command.
type CommandDirection string

// Command directions.
const (
	DirectionCommandToServer    CommandDirection = "commandToServer"
	DirectionResponseFromServer CommandDirection = "responseFromServer"
)

// ClusterSide tags which side of a device type a cluster instance is on.
type ClusterSide string

// Cluster sides.
const (
	SideUnspecified ClusterSide = ""
	SideClient      ClusterSide = "client"
	SideServer      ClusterSide = "server"
)

// ClusterHierarchy tags whether a cluster's classification is a base or a
// derived cluster.
type ClusterHierarchy string

// Cluster hierarchies.
const (
	HierarchyBase    ClusterHierarchy = "base"
	HierarchyDerived ClusterHierarchy = "derived"
)

// ClusterClassification carries a cluster's role/scope/hierarchy/PICS
// metadata and, for derived clusters, the base cluster's name.
type ClusterClassification struct {
	Hierarchy   ClusterHierarchy
	Role        string
	PICS        string
	Scope       string
	BaseCluster string
}

// DeviceClassification carries a device type's superset/class/scope.
type DeviceClassification struct {
	Superset string
	Class    string
	Scope    string
}

// ClusterAlias pairs an alternate cluster ID with an alternate name, used to
// resolve a derived cluster's base by name.
type ClusterAlias struct {
	ID   uint32
	Name string
}

// Feature is one bit of a cluster's feature map.
type Feature struct {
	Bit         uint8
	Code        string
	Name        string
	Summary     string
	Conformance *Conformance
}

// Bitfield is one named, positioned bit of a Matter bitmap type.
type Bitfield struct {
	Bit         int
	Name        string
	Summary     string
	Conformance *Conformance
}

// Item is one named, valued entry of a Matter enum type.
type Item struct {
	Value       int64
	Name        string
	Summary     string
	Conformance *Conformance
}

// Access carries the read/write/invoke privilege and fabric qualifiers of an
// attribute, command, or event.
type Access struct {
	Read             *bool
	Write            *bool
	FabricScoped     *bool
	FabricSensitive  *bool
	ReadPrivilege    string
	WritePrivilege   string
	InvokePrivilege  string
	Timed            *bool
}

// OtherQuality carries the boolean quality flags not modeled elsewhere.
type OtherQuality struct {
	Nullable         *bool
	NonVolatile      *bool
	Fixed            *bool
	Scene            *bool
	Reportable       *bool
	ChangeOmitted    *bool
	Singleton        *bool
	Diagnostics      *bool
	LargeMessage     *bool
	QuieterReporting *bool
}

// ConstraintType tags which shape of bound a Constraint carries.
type ConstraintType string

// Constraint types.
const (
	ConstraintNone          ConstraintType = ""
	ConstraintAllowed       ConstraintType = "allowed"
	ConstraintBetween       ConstraintType = "between"
	ConstraintMin           ConstraintType = "min"
	ConstraintMax           ConstraintType = "max"
	ConstraintLengthBetween ConstraintType = "lengthBetween"
	ConstraintMinLength     ConstraintType = "minLength"
	ConstraintMaxLength     ConstraintType = "maxLength"
	ConstraintCountBetween  ConstraintType = "countBetween"
	ConstraintMinCount      ConstraintType = "minCount"
	ConstraintMaxCount      ConstraintType = "maxCount"
	ConstraintDesc          ConstraintType = "desc"
)

// Constraint is a Matter attribute/command-field/event-field constraint
// expression.
type Constraint struct {
	Type            ConstraintType
	Value           *Value
	Min             *Value
	Max             *Value
	Desc            string
	EntryType       string
	EntryConstraint *Constraint
}

// ConformanceKind tags which arm of Conformance is populated.
type ConformanceKind string

// Conformance kinds.
const (
	ConformanceMandatory   ConformanceKind = "mandatory"
	ConformanceOptional    ConformanceKind = "optional"
	ConformanceProvisional ConformanceKind = "provisional"
	ConformanceDeprecated  ConformanceKind = "deprecated"
	ConformanceDisallowed  ConformanceKind = "disallowed"
	ConformanceOtherwise   ConformanceKind = "otherwise"
)

// Conformance is a Matter conformance expression: exactly one of the five
// simple kinds, or an "otherwise" chain of alternative Conformances, plus an
// optional boolean condition tree and choice-group metadata.
type Conformance struct {
	Kind       ConformanceKind
	Otherwise  []*Conformance
	Condition  interface{} // parsed conformance expression tree, see internal/conformance
	Choice     string
	ChoiceMore *bool
}

// Mandatory reports whether the conformance is exactly ConformanceMandatory.
func (c *Conformance) Mandatory() bool { return c != nil && c.Kind == ConformanceMandatory }

// DataField is one field of a Matter struct, or one field of a command's
// payload.
type DataField struct {
	ID          uint32
	Name        string
	Type        string
	Conformance *Conformance
	Access      *Access
	Summary     string
	Constraint  *Constraint
	Quality     *OtherQuality
	Default     *Value
}

// Attribute is a Matter cluster attribute.
type Attribute struct {
	ID          uint32
	Name        string
	Type        string
	Conformance *Conformance
	Access      *Access
	Summary     string
	Constraint  *Constraint
	Quality     *OtherQuality
	Default     *Value
}

// Command is a Matter cluster command, client- or server-issued.
type Command struct {
	ID            uint32
	Name          string
	Type          string
	Conformance   *Conformance
	Access        *Access
	Summary       string
	Constraint    *Constraint
	Quality       *OtherQuality
	Default       *Value
	Direction     CommandDirection
	Response      string // "N", "Y", or the name of a server command
	CommandFields []DataField
}

// Response sentinel values.
const (
	ResponseNone = "N"
	ResponseYes  = "Y"
)

// Event is a Matter cluster event.
type Event struct {
	ID          uint32
	Name        string
	Type        string
	Conformance *Conformance
	Access      *Access
	Summary     string
	Constraint  *Constraint
	Quality     *OtherQuality
	Default     *Value
	Priority    string
	Fields      []DataField
}

// Cluster is a Matter cluster definition: attributes, commands, events, and
// its local bitmap/enum/struct type catalog.
type Cluster struct {
	ID               uint32
	Name             string
	Conformance      *Conformance
	Summary          string
	Revision         uint8
	RevisionHistory  map[uint8]string
	ClusterAliases   []ClusterAlias
	Classification   *ClusterClassification
	FeatureMap       []Feature
	Attributes       []Attribute
	ClientCommands   []Command
	ServerCommands   map[string]Command
	Events           []Event
	Bitmaps          map[string][]Bitfield
	Enums            map[string][]Item
	Structs          map[string][]DataField
	Side             ClusterSide
}

// Device is a Matter device type: a named bundle of clusters each tagged
// client or server.
type Device struct {
	ID              uint32
	Name            string
	Summary         string
	Revision        uint8
	RevisionHistory map[uint8]string
	Conditions      []string
	Classification  *DeviceClassification
	Conformance     *Conformance
	Clusters        []Cluster
}

package apexdoc

import "regexp"

// Role is the declaration kind a bundle recognises.
type Role int

// Available roles.
const (
	RoleClassHeader Role = iota + 1
	RoleTriggerHeader
	RoleInnerClass
	RoleProperty
	RolePropertyAccessor
	RoleConstructor
	RoleMethod
)

// String returns the role name.
func (r Role) String() string {
	switch r {
	case RoleClassHeader:
		return "class header"
	case RoleTriggerHeader:
		return "trigger header"
	case RoleInnerClass:
		return "inner class"
	case RoleProperty:
		return "property"
	case RolePropertyAccessor:
		return "property accessor"
	case RoleConstructor:
		return "constructor"
	case RoleMethod:
		return "method"
	default:
		return "unknown"
	}
}

// Grammar elements. Keywords are matched case-insensitively like Apex does.
const (
	// fileStart anchors class and trigger headers.
	fileStart = `\A\s*`

	// lineStart puts a member's doc comment at the start of a line.
	lineStart = `(?:\A|\n)[ \t]*`

	// indentedLineStart requires the doc comment to be indented.
	indentedLineStart = `\n[ \t]+`

	// docComment is a complete /** ... */ block.
	docComment = `(?P<doc>/\*\*(?:[^*]|\*+[^*/])*\*+/)`

	// annotations are zero or more @Name or @Name(...) prefixes. Quoted
	// values may contain parentheses.
	annotations = `(?:@\w+(?:\s*\((?:[^()']|'(?:[^'\\]|\\.)*')*\))?\s+)*`

	// accessModifier covers access, inheritance, storage and sharing keywords.
	accessModifier = `(?:(?i:private|protected|public|global|abstract|virtual|override|static|transient|final|testmethod|webservice|(?:with|without|inherited)\s+sharing)\s+)*`

	// returnType is a possibly qualified, generic or array type.
	returnType = `(?P<type>[\w.]+(?:\s*<[\w.<>,\s]*>)?(?:\[\])?)`

	// name is the declared identifier.
	name = `(?P<name>\w+)`

	// classOptions are extends and implements clauses.
	classOptions = `[^{;]*?`

	// methodParams is a parenthesised parameter list.
	methodParams = `\((?P<params>[^)]*)\)`

	// triggerParams is the parenthesised list of trigger events.
	triggerParams = `\((?P<params>[\w\s,]+)\)`

	// assignedValue ends a field declaration.
	assignedValue = `\s*(?:=[^;]*)?;`

	// getSet is an accessor block such as { get; set; } or { get; private set; }.
	getSet = `\s*\{\s*(?:(?i:public|private|protected|global)\s+)?(?i:get)\s*(?:;|\{[^}]*\})\s*(?:(?:(?i:public|private|protected|global)\s+)?(?i:set)\s*(?:;|\{[^}]*\})\s*)?\}`

	// signatureEnd closes a class, trigger or method signature.
	signatureEnd = `\s*\{`

	// methodEnd also accepts abstract and interface methods.
	methodEnd = `\s*[{;]`
)

// Bundle is the compiled structural pattern of one role.
type Bundle struct {
	Role    Role
	pattern *regexp.Regexp
	doc     int
	decl    int
	name    int
	typ     int
}

func newBundle(role Role, expr string) *Bundle {
	re := regexp.MustCompile(expr)
	return &Bundle{
		Role:    role,
		pattern: re,
		doc:     re.SubexpIndex("doc"),
		decl:    re.SubexpIndex("decl"),
		name:    re.SubexpIndex("name"),
		typ:     re.SubexpIndex("type"),
	}
}

// Compiled bundles, one per role.
var (
	ClassHeader = newBundle(RoleClassHeader,
		fileStart+docComment+`\s*(?P<decl>`+annotations+accessModifier+
			`(?i:class)\s+`+name+classOptions+`)`+signatureEnd)

	TriggerHeader = newBundle(RoleTriggerHeader,
		fileStart+docComment+`\s*(?P<decl>`+annotations+
			`(?i:trigger)\s+`+name+`\s+(?i:on)\s+\w+\s*`+triggerParams+`)`+signatureEnd)

	InnerClass = newBundle(RoleInnerClass,
		indentedLineStart+docComment+`\s*(?P<decl>`+annotations+accessModifier+
			`(?i:class)\s+`+name+classOptions+`)`+signatureEnd)

	Property = newBundle(RoleProperty,
		lineStart+docComment+`\s*(?P<decl>`+annotations+accessModifier+
			returnType+`\s+`+name+assignedValue+`)`)

	PropertyAccessor = newBundle(RolePropertyAccessor,
		lineStart+docComment+`\s*(?P<decl>`+annotations+accessModifier+
			returnType+`\s+`+name+getSet+`)`)

	Constructor = newBundle(RoleConstructor,
		lineStart+docComment+`\s*(?P<decl>`+annotations+accessModifier+
			name+`\s*`+methodParams+`)`+signatureEnd)

	Method = newBundle(RoleMethod,
		lineStart+docComment+`\s*(?P<decl>`+annotations+accessModifier+
			returnType+`\s+`+name+`\s*`+methodParams+`)`+methodEnd)
)

// BundleFor returns the bundle of role, or nil.
func BundleFor(role Role) *Bundle {
	switch role {
	case RoleClassHeader:
		return ClassHeader
	case RoleTriggerHeader:
		return TriggerHeader
	case RoleInnerClass:
		return InnerClass
	case RoleProperty:
		return Property
	case RolePropertyAccessor:
		return PropertyAccessor
	case RoleConstructor:
		return Constructor
	case RoleMethod:
		return Method
	default:
		return nil
	}
}

// tagLine is one "@name value" line inside a doc comment, after the
// leading asterisks are removed.
var tagLine = regexp.MustCompile(`^@(\w+)\s*(.*)$`)

// lineEndings matches CRLF and lone CR.
var lineEndings = regexp.MustCompile(`\r\n?`)

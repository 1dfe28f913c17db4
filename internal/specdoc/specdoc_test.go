package specdoc

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/apexspec-cli/internal/core/domain"
	"github.com/custodia-labs/apexspec-cli/internal/markdown"
)

func calculatorMember() Member {
	return Member{
		Kind: domain.ApexKindClass,
		Record: domain.ApexRecord{
			Name:                  "Calculator",
			APIVersion:            52,
			BodyCrc:               1234567890,
			LengthWithoutComments: 64,
			ManageableState:       "unmanaged",
			Body:                  "/** \n * @description Adds two numbers \n */\npublic Integer add(Integer a, Integer b) { ... }",
		},
		SymbolTable: domain.SymbolTable{
			Name: "Calculator",
			TableDeclaration: &domain.Declaration{
				Name:      "Calculator",
				Modifiers: []string{"public"},
			},
			Methods: []domain.Method{{
				Name:       "add",
				ReturnType: "Integer",
				Modifiers:  []string{"public"},
				Parameters: []domain.Parameter{
					{Name: "a", Type: "Integer"},
					{Name: "b", Type: "Integer"},
				},
			}},
		},
	}
}

// after returns the block that follows the first heading with text.
func after(t *testing.T, blocks []markdown.Block, text string, offset int) markdown.Block {
	t.Helper()
	for i, b := range blocks {
		if h, ok := b.(markdown.Heading); ok && h.Text == text {
			require.Less(t, i+offset, len(blocks), "nothing after %q", text)
			return blocks[i+offset]
		}
	}
	t.Fatalf("heading %q not found", text)
	return nil
}

func TestBuild_MethodRowAndApexDoc(t *testing.T) {
	blocks := Build(calculatorMember(), Options{}).Blocks()

	table, ok := after(t, blocks, TitleMethods, 1).(markdown.Table)
	require.True(t, ok)
	assert.Equal(t, MethodTable, table.Headers)
	assert.Equal(t, [][]string{{"-", "public", "Integer", "add", "Integer a,<br>Integer b"}}, table.Rows)

	assert.Equal(t, markdown.Heading{Level: 3, Text: "add"}, after(t, blocks, TitleMethods, 2))
	description, ok := after(t, blocks, "add", 1).(markdown.Table)
	require.True(t, ok)
	assert.Equal(t, [][]string{{"Adds two numbers"}}, description.Rows)
	assert.Equal(t, markdown.List{Items: []string{"**`description`** : Adds two numbers"}}, after(t, blocks, "add", 2))
	assert.Equal(t, markdown.Code{Language: "java", Content: "public Integer add(Integer a, Integer b)"}, after(t, blocks, "add", 3))
}

func TestBuild_Header(t *testing.T) {
	blocks := Build(calculatorMember(), Options{}).Blocks()

	require.GreaterOrEqual(t, len(blocks), 5)
	assert.Equal(t, markdown.Heading{Level: 1, Text: "Calculator.cls"}, blocks[0])
	assert.Equal(t, markdown.Table{
		Headers: HeaderTable,
		Rows:    [][]string{{"-", "unmanaged", "52.0", "1234567890", "64"}},
	}, blocks[1])
	assert.Equal(t, markdown.Table{
		Headers: ClassTable,
		Rows:    [][]string{{"-", "public", "Calculator", "-", "-"}},
	}, blocks[2])
	// The body has no class header comment.
	assert.Equal(t, markdown.Table{Headers: ApexDocTable, Rows: [][]string{{NoApexDoc}}}, blocks[3])
	assert.Equal(t, markdown.Paragraph{Text: "<br>"}, blocks[4])
}

func TestBuild_EmptySectionsAreNotApplicable(t *testing.T) {
	blocks := Build(calculatorMember(), Options{}).Blocks()

	for _, title := range []string{TitleExternalReferences, TitleInnerClasses, TitleProperties, TitleConstructors} {
		assert.Equal(t, markdown.Paragraph{Text: NotApplicable}, after(t, blocks, title, 1), title)
	}
	assert.Equal(t, markdown.Heading{Level: 2, Text: TitleProperties}, after(t, blocks, TitleInnerClasses, 2))
}

func TestBuild_UnmatchedItemGetsPlaceholder(t *testing.T) {
	m := calculatorMember()
	m.SymbolTable.Methods = append(m.SymbolTable.Methods, domain.Method{
		Name:       "reset",
		Modifiers:  []string{"global", "static"},
		Parameters: nil,
	})

	blocks := Build(m, Options{}).Blocks()

	table := after(t, blocks, TitleMethods, 1).(markdown.Table)
	assert.Equal(t, []string{"-", "global static", "void", "reset", "-"}, table.Rows[0])
	assert.Equal(t, markdown.Table{Headers: ApexDocTable, Rows: [][]string{{NoApexDoc}}}, after(t, blocks, "reset", 1))
}

func TestBuild_GenericsJoin(t *testing.T) {
	m := calculatorMember()
	m.Record.Body = `public class Calculator {
    /**
     * @description Sums a list
     * @param values numbers to add
     */
    public static Integer sum(List<Integer> values) {
        return 0;
    }
}`
	m.SymbolTable.Methods = []domain.Method{{
		Name:       "sum",
		ReturnType: "Integer",
		Modifiers:  []string{"static", "public"},
		Parameters: []domain.Parameter{{Name: "values", Type: "List<Integer>"}},
	}}

	blocks := Build(m, Options{}).Blocks()

	assert.Equal(t, markdown.Table{Headers: ApexDocTable, Rows: [][]string{{"Sums a list"}}}, after(t, blocks, "sum", 1))
	assert.Equal(t, markdown.List{Items: []string{
		"**`description`** : Sums a list",
		"**`param`** : values numbers to add",
	}}, after(t, blocks, "sum", 2))
}

func TestBuild_InnerClasses(t *testing.T) {
	m := calculatorMember()
	m.Record.Body = `public class Calculator {
    /**
     * @description One result
     */
    public class Result {
    }
}`
	m.SymbolTable.InnerClasses = []domain.SymbolTable{{
		Name:             "Result",
		TableDeclaration: &domain.Declaration{Modifiers: []string{"public"}},
		Properties:       []domain.Property{{Name: "value", Type: "Integer", Modifiers: []string{"public"}}},
	}}

	blocks := Build(m, Options{}).Blocks()

	table := after(t, blocks, TitleInnerClasses, 1).(markdown.Table)
	assert.Equal(t, [][]string{{"-", "public", "Result", "-", "-"}}, table.Rows)
	assert.Equal(t, markdown.Table{Headers: ApexDocTable, Rows: [][]string{{"One result"}}}, after(t, blocks, "Result", 1))

	out := Render(m, Options{})
	assert.Contains(t, out, "#### External References\n\nN/A")
	assert.Contains(t, out, "#### Constructors\n\nN/A")
	assert.Contains(t, out, "#### Properties\n\n| Annotations | Modifier | Type | Name |\n| --- | --- | --- | --- |\n| - | public | Integer | value |")
}

func TestBuild_SectionsSorted(t *testing.T) {
	m := calculatorMember()
	m.SymbolTable.Properties = []domain.Property{
		{Name: "zeta", Type: "String"},
		{Name: "alpha", Type: "String"},
	}

	blocks := Build(m, Options{}).Blocks()

	table := after(t, blocks, TitleProperties, 1).(markdown.Table)
	assert.Equal(t, [][]string{
		{"-", "-", "String", "alpha"},
		{"-", "-", "String", "zeta"},
	}, table.Rows)
	assert.Equal(t, markdown.Heading{Level: 3, Text: "alpha"}, after(t, blocks, TitleProperties, 2))
}

func TestBuild_ExternalReferences(t *testing.T) {
	m := calculatorMember()
	m.SymbolTable.ExternalReferences = []domain.ExternalReference{{
		Name:      "Logger",
		Namespace: "util",
		Methods:   []domain.NamedItem{{Name: "info"}, {Name: "warn"}},
	}}

	blocks := Build(m, Options{}).Blocks()

	assert.Equal(t, markdown.Table{
		Headers: ExternalReferenceTable,
		Rows:    [][]string{{"util", "Logger", "-", "info<br>warn"}},
	}, after(t, blocks, TitleExternalReferences, 1))
}

func TestBuild_Trigger(t *testing.T) {
	m := Member{
		Kind: domain.ApexKindTrigger,
		Record: domain.ApexRecord{
			Name:              "ContactSync",
			APIVersion:        48.5,
			Body:              "/**\n * @description Syncs contacts\n */\ntrigger ContactSync on Contact (before insert, after update) {\n}",
			UsageBeforeInsert: true,
			UsageAfterUpdate:  true,
		},
	}

	docText := Render(m, Options{})
	blocks := Build(m, Options{}).Blocks()

	assert.Equal(t, markdown.Heading{Level: 1, Text: "ContactSync.trigger"}, blocks[0])
	assert.Equal(t, markdown.Table{
		Headers: TriggerTable,
		Rows:    [][]string{{"Y", "", "", "", "Y", "", ""}},
	}, blocks[2])
	assert.Equal(t, markdown.Table{Headers: ApexDocTable, Rows: [][]string{{"Syncs contacts"}}}, blocks[3])
	assert.Contains(t, docText, "```java\ntrigger ContactSync on Contact (before insert, after update)\n```")
	assert.Contains(t, docText, "| - | - | 48.5 | 0 | 0 |")
	assert.NotContains(t, docText, "## "+TitleMethods)
	assert.NotContains(t, docText, "## "+TitleInnerClasses)
}

func TestBuild_Verbose(t *testing.T) {
	m := calculatorMember()

	plain := Render(m, Options{})
	verbose := Render(m, Options{Verbose: true})

	assert.NotContains(t, plain, "## "+TitleSource)
	assert.True(t, strings.HasSuffix(verbose, "## Source\n\n```java\n"+m.Record.Body+"\n```\n"))
}

func TestRawDump(t *testing.T) {
	doc := markdown.New().H1("Calculator.cls")
	symbolTable := []byte(`{
  "name": "Calculator",
  "methods": [ { "name": "add" } ],
  "parentClass": null,
  "id": "01p000000000001"
}`)

	out, err := RawDump(doc, symbolTable)
	require.NoError(t, err)

	want := "# Calculator.cls\n\n" +
		"## Raw Data\n\n" +
		"### name\n\n\"Calculator\"\n\n" +
		"### methods\n\n[{\"name\":\"add\"}]\n\n" +
		"### parentClass\n\nnull\n\n" +
		"### id\n\n\"01p000000000001\"\n"
	assert.Equal(t, want, out)
	assert.Len(t, doc.Blocks(), 1)
}

func TestRawDump_InvalidJSON(t *testing.T) {
	_, err := RawDump(markdown.New(), []byte(`[1, 2]`))
	assert.Error(t, err)
}

func TestBuild_AnnotatedMethodJoins(t *testing.T) {
	m := calculatorMember()
	m.Record.Body = `public class Calculator {
    /**
     * @description Loads accounts by name
     */
    @AuraEnabled(cacheable=true)
    public static List<Account> getAccounts(String name) {
        return null;
    }
}`
	m.SymbolTable.Methods = []domain.Method{{
		Name:        "getAccounts",
		ReturnType:  "List<Account>",
		Annotations: []domain.Annotation{{Name: "AuraEnabled"}},
		Modifiers:   []string{"public", "static"},
		Parameters:  []domain.Parameter{{Name: "name", Type: "String"}},
	}}

	blocks := Build(m, Options{}).Blocks()

	assert.Equal(t, markdown.Table{Headers: ApexDocTable, Rows: [][]string{{"Loads accounts by name"}}}, after(t, blocks, "getAccounts", 1))
}

func TestBuild_InnerMemberDoesNotShadowOuter(t *testing.T) {
	m := calculatorMember()
	m.Record.Body = `public class Calculator {
    public class Helper {
        /**
         * @description Inner method
         */
        public Integer add(Integer a, Integer b) {
            return a + b;
        }
    }

    /**
     * @description Outer method
     */
    public Integer add(Integer a, Integer b) {
        return Helper.add(a, b);
    }
}`

	blocks := Build(m, Options{}).Blocks()

	assert.Equal(t, markdown.Table{Headers: ApexDocTable, Rows: [][]string{{"Outer method"}}}, after(t, blocks, "add", 1))
}

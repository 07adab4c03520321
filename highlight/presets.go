package highlight

import (
	"fmt"
	"sort"
	"strings"

	"texteditor/palette"
)

var presets = map[string]func() *LanguageDefinition{
	"glua": GLua,
	"c++":  CPlusPlus,
	"cpp":  CPlusPlus,
	"c":    C,
	"lua":  Lua,
	"sql":  SQL,
}

// Preset returns a fresh copy of a built-in definition. Names that are not
// built in are looked up as chroma lexers.
func Preset(name string) (*LanguageDefinition, error) {
	if fn, ok := presets[strings.ToLower(name)]; ok {
		return fn(), nil
	}
	d, err := ChromaLanguage(name)
	if err != nil {
		return nil, fmt.Errorf("preset %q: %w", name, err)
	}
	return d, nil
}

// PresetNames lists the built-in definitions.
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

var luaKeywords = []string{
	"and", "break", "do", "else", "elseif", "end", "false", "for", "function",
	"goto", "if", "in", "local", "nil", "not", "or", "repeat", "return", "then",
	"true", "until", "while",
}

var luaLibrary = []string{
	"assert", "collectgarbage", "dofile", "error", "getmetatable", "ipairs",
	"loadfile", "load", "loadstring", "next", "pairs", "pcall", "print",
	"rawequal", "rawlen", "rawget", "rawset", "select", "setmetatable",
	"tonumber", "tostring", "type", "xpcall", "_G", "_VERSION", "require",
	"module", "unpack", "coroutine", "table", "io", "os", "string", "utf8",
	"bit32", "math", "debug", "package", "abs", "ceil", "floor", "max", "min",
	"sqrt", "random", "format", "gsub", "gmatch", "find", "len", "lower",
	"upper", "sub", "concat", "insert", "remove", "sort",
}

var gluaLibrary = []string{
	"LocalPlayer", "Entity", "Player", "Vector", "Angle", "Color", "Material",
	"IsValid", "CurTime", "RealTime", "FrameTime", "ScrW", "ScrH", "Msg",
	"MsgC", "MsgN", "PrintTable", "RunConsoleCommand", "GetConVar",
	"CreateClientConVar", "surface", "draw", "hook", "net", "timer", "player",
	"ents", "util", "render", "cam", "input", "vgui", "GetPos", "SetPos",
	"GetVolume", "SetVolume", "Play", "Pause", "Stop", "GetFileName",
	"GetLength", "IsLooping", "EnableLooping", "GetAngles", "SetAngles",
	"Health", "Alive", "Nick", "SteamID", "Team", "GetActiveWeapon",
	"EyePos", "EyeAngles", "GetShootPos", "LookupBone", "GetBonePosition",
}

// GLua is Lua extended with C comments and the Garry's Mod API.
func GLua() *LanguageDefinition {
	d := NewLanguage("GLua", true, TokenizeCStyle)
	d.AddKeywords(luaKeywords...)
	d.AddKeywords("continue",
		"TEXT_ALIGN_LEFT", "TEXT_ALIGN_CENTER", "TEXT_ALIGN_RIGHT",
		"TEXT_ALIGN_TOP", "TEXT_ALIGN_BOTTOM",
		"ESP_LEFT", "ESP_RIGHT", "ESP_TOP", "ESP_BOTTOM")
	d.AddIdentifiers("Native Lua Function", luaLibrary...)
	d.AddIdentifiers("gLua Function", gluaLibrary...)
	d.CommentStart, d.CommentEnd = "--[[", "]]"
	d.CommentStart2, d.CommentEnd2 = "/*", "*/"
	d.SingleLineComment, d.SingleLineComment2 = "--", "//"
	d.PreprocChar = 0
	d.AutoIndentation = true
	return d
}

var cKeywords = []string{
	"auto", "break", "case", "char", "const", "continue", "default", "do",
	"double", "else", "enum", "extern", "float", "for", "goto", "if", "inline",
	"int", "long", "register", "restrict", "return", "short", "signed",
	"sizeof", "static", "struct", "switch", "typedef", "union", "unsigned",
	"void", "volatile", "while", "_Alignas", "_Alignof", "_Atomic", "_Bool",
	"_Complex", "_Generic", "_Imaginary", "_Noreturn", "_Static_assert",
	"_Thread_local",
}

var cppKeywords = []string{
	"alignas", "alignof", "and", "and_eq", "asm", "bitand", "bitor", "bool",
	"catch", "char16_t", "char32_t", "class", "compl", "concept", "constexpr",
	"const_cast", "decltype", "delete", "dynamic_cast", "explicit", "export",
	"false", "friend", "import", "module", "mutable", "namespace", "new",
	"noexcept", "not", "not_eq", "nullptr", "operator", "or", "or_eq",
	"private", "protected", "public", "reinterpret_cast", "requires",
	"static_assert", "static_cast", "template", "this", "thread_local",
	"throw", "true", "try", "typeid", "typename", "using", "virtual",
	"wchar_t", "xor", "xor_eq",
}

var cLibrary = []string{
	"abort", "abs", "acos", "asin", "atan", "atexit", "atof", "atoi", "atol",
	"ceil", "clock", "cosh", "ctime", "div", "exit", "fabs", "floor", "fmod",
	"getchar", "getenv", "isalnum", "isalpha", "isdigit", "isgraph",
	"ispunct", "isspace", "isupper", "kbhit", "log10", "log2", "log",
	"memcmp", "modf", "pow", "printf", "sprintf", "snprintf", "putchar",
	"putenv", "puts", "rand", "remove", "rename", "sinh", "sqrt", "srand",
	"strcat", "strcmp", "strerror", "time", "tolower", "toupper", "malloc",
	"calloc", "realloc", "free", "memcpy", "memset", "strlen", "strncpy",
}

var cppLibrary = []string{
	"std", "string", "vector", "map", "unordered_map", "set", "unique_ptr",
	"shared_ptr", "make_unique", "make_shared", "cout", "cin", "cerr",
	"endl", "move", "forward", "size_t", "nullptr_t",
}

var preprocDirectives = []string{
	"include", "define", "undef", "if", "ifdef", "ifndef", "elif", "else",
	"endif", "error", "pragma", "line",
}

func cFamily(name string, keywords [][]string, library [][]string) *LanguageDefinition {
	d := NewLanguage(name, true, TokenizeCStyle)
	for _, k := range keywords {
		d.AddKeywords(k...)
	}
	for _, l := range library {
		d.AddIdentifiers("Built-in function", l...)
	}
	d.AddPreprocIdentifiers("Preprocessor directive", preprocDirectives...)
	d.CommentStart, d.CommentEnd = "/*", "*/"
	d.SingleLineComment = "//"
	d.AutoIndentation = true
	return d
}

func CPlusPlus() *LanguageDefinition {
	return cFamily("C++", [][]string{cKeywords, cppKeywords}, [][]string{cLibrary, cppLibrary})
}

func C() *LanguageDefinition {
	return cFamily("C", [][]string{cKeywords}, [][]string{cLibrary})
}

// Lua uses a regex table instead of the C scanner so long strings and
// Lua's own number syntax are recognised.
func Lua() *LanguageDefinition {
	d := NewLanguage("Lua", true, MustRegexTokenizer([]Rule{
		{`"(\\.|[^"\\])*"`, palette.String},
		{`'(\\.|[^'\\])*'`, palette.String},
		{`\[\[.*?\]\]`, palette.String},
		{`0[xX][0-9a-fA-F]+`, palette.Number},
		{`[+-]?([0-9]+([.][0-9]*)?|[.][0-9]+)([eE][+-]?[0-9]+)?`, palette.Number},
		{`[a-zA-Z_][a-zA-Z0-9_]*`, palette.Identifier},
		{`[\[\]{}!%^&*()\-+=~|<>?/;,.#:]`, palette.Punctuation},
	}))
	d.AddKeywords(luaKeywords...)
	d.AddIdentifiers("Built-in function", luaLibrary...)
	d.CommentStart, d.CommentEnd = "--[[", "]]"
	d.SingleLineComment = "--"
	d.PreprocChar = 0
	d.AutoIndentation = false
	return d
}

// SQL is case-insensitive: keywords match in any case.
func SQL() *LanguageDefinition {
	d := NewLanguage("SQL", false, MustRegexTokenizer([]Rule{
		{`"(\\.|[^"\\])*"`, palette.String},
		{`'([^']|'')*'`, palette.String},
		{`0[xX][0-9a-fA-F]+`, palette.Number},
		{`[+-]?([0-9]+([.][0-9]*)?|[.][0-9]+)([eE][+-]?[0-9]+)?`, palette.Number},
		{`[a-zA-Z_][a-zA-Z0-9_]*`, palette.Identifier},
		{`[\[\]{}!%^&*()\-+=~|<>?/;,.]`, palette.Punctuation},
	}))
	d.AddKeywords(
		"ADD", "ALL", "ALTER", "AND", "AS", "ASC", "BEGIN", "BETWEEN", "BY",
		"CASE", "CHECK", "COLUMN", "COMMIT", "CONSTRAINT", "CREATE", "CROSS",
		"DATABASE", "DEFAULT", "DELETE", "DESC", "DISTINCT", "DROP", "ELSE",
		"END", "EXISTS", "FOREIGN", "FROM", "FULL", "GROUP", "HAVING", "IN",
		"INDEX", "INNER", "INSERT", "INTO", "IS", "JOIN", "KEY", "LEFT", "LIKE",
		"LIMIT", "NOT", "NULL", "ON", "OR", "ORDER", "OUTER", "PRIMARY",
		"REFERENCES", "RIGHT", "ROLLBACK", "SELECT", "SET", "TABLE", "THEN",
		"TRANSACTION", "UNION", "UNIQUE", "UPDATE", "VALUES", "VIEW", "WHEN",
		"WHERE", "WITH",
	)
	d.AddIdentifiers("Built-in function",
		"ABS", "AVG", "CAST", "COALESCE", "CONCAT", "COUNT", "CURRENT_DATE",
		"CURRENT_TIMESTAMP", "IFNULL", "LENGTH", "LOWER", "MAX", "MIN", "NOW",
		"NULLIF", "ROUND", "SUBSTRING", "SUM", "TRIM", "UPPER",
	)
	d.CommentStart, d.CommentEnd = "/*", "*/"
	d.SingleLineComment = "--"
	d.PreprocChar = 0
	return d
}

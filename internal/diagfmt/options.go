package diagfmt

// PathMode controls how file names are printed.
type PathMode uint8

const (
	PathModeAuto PathMode = iota // relative under the base dir, absolute otherwise
	PathModeAbsolute
	PathModeRelative
	PathModeBasename
)

// Format is the --format of check.
type Format uint8

const (
	FormatPretty Format = iota
	FormatShort
	FormatJSON
	FormatSarif
)

var formatNames = map[string]Format{
	"":       FormatPretty,
	"pretty": FormatPretty,
	"short":  FormatShort,
	"json":   FormatJSON,
	"sarif":  FormatSarif,
}

func ParseFormat(s string) (Format, bool) {
	f, ok := formatNames[s]
	return f, ok
}

// PrettyOpts: Context is the number of source lines around the primary span.
type PrettyOpts struct {
	Color       bool
	Context     int8
	PathMode    PathMode
	ShowNotes   bool
	ShowFixes   bool
	ShowPreview bool
}

type JSONOpts struct {
	IncludePositions bool // добавить line/col
	PathMode         PathMode
	Max              int // обрезка вывода, не Bag
	IncludeNotes     bool
	IncludeFixes     bool
	IncludePreviews  bool
}

// SarifRunMeta provides metadata for SARIF output.
type SarifRunMeta struct {
	ToolName       string
	ToolVersion    string
	InformationURI string
	InvocationArgs []string
}

package engine

// ============================================================================
// ENGINE OPTIONS — Functional options shared by the stages
// ============================================================================

// Default column names of the UFRN research-project export.
const (
	ColumnUnidade       = "unidade"
	ColumnArea          = "area_conhecimento_cnpq"
	ColumnPalavrasChave = "palavras_chave"
	ColumnLinha         = "linha_pesquisa"
	ColumnAno           = "ano"
)

// DefaultConfidence is the level of the interval for the mean count.
const DefaultConfidence = 0.95

// DefaultKeywords lists the computing-related substrings a project must mention.
var DefaultKeywords = []string{
	"computação",
	"informática",
	"ciência da computação",
	"engenharia de computação",
	"sistemas embarcados",
	"algoritmo",
	"inteligência artificial",
	"programação",
	"imd",
	"ccet",
}

// DefaultTextColumns are the free-text columns searched for keywords.
var DefaultTextColumns = []string{ColumnUnidade, ColumnArea, ColumnPalavrasChave, ColumnLinha}

// Option configures engine behavior via functional options pattern.
type Option func(*config)

type config struct {
	Keywords    []string
	TextColumns []string
	YearColumn  string
	Confidence  float64
}

// WithKeywords replaces the keyword set. Empty keeps the default.
func WithKeywords(keywords []string) Option {
	return func(c *config) {
		if len(keywords) > 0 {
			c.Keywords = keywords
		}
	}
}

// WithTextColumns replaces the columns searched by the keyword filter.
func WithTextColumns(columns []string) Option {
	return func(c *config) {
		if len(columns) > 0 {
			c.TextColumns = columns
		}
	}
}

// WithYearColumn sets the column holding the project year.
func WithYearColumn(column string) Option {
	return func(c *config) {
		if column != "" {
			c.YearColumn = column
		}
	}
}

// WithConfidence sets the level of the interval for the mean (0 < level < 1).
// Zero keeps the default.
func WithConfidence(level float64) Option {
	return func(c *config) {
		if level != 0 {
			c.Confidence = level
		}
	}
}

func applyOptions(opts []Option) *config {
	cfg := &config{
		Keywords:    DefaultKeywords,
		TextColumns: DefaultTextColumns,
		YearColumn:  ColumnAno,
		Confidence:  DefaultConfidence,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

package parser

// Intent is the parsed form of one line of player input.
type Intent struct {
	Raw        string
	Normalised string
	Verb       string
	Args       []string
	Confidence float64
	Clarify    *ClarifyQuestion
}

// ClarifyQuestion is returned instead of a verb when input was empty,
// unrecognisable, or ambiguous between two close matches.
type ClarifyQuestion struct {
	Prompt  string
	Options []string
}

type CommandDef struct {
	Canonical string
	Aliases   []string
	Help      string
}

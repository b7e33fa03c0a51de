// Package pytok tokenizes source text whose surface syntax matches
// Python 3. A single-pass automaton classifies keywords, identifiers,
// numeric literals in four radices (with float, exponent and imaginary
// forms), single/double/triple-quoted strings with escape handling,
// operators and delimiters including compound assignment, and
// comments, while an indentation tracker emits synthetic NEWLINE,
// INDENT and DEDENT tokens under the off-side rule. Lexical errors are
// in-band ERROR tokens; the lexer never aborts on bad input.
package pytok

// Version is the released version of the tokenizer.
var Version = "0.4.1"

// BuildDate is stamped by the build; "dev" for source builds.
var BuildDate = "dev"

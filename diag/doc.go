// Package diag renders parse and conversion errors for people. It turns
// the spans carried by token.SyntaxErr and parse.SemanticErr into source
// excerpts with carets, and provides a line diff for comparing encoded
// documents.
package diag

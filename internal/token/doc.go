// Package token defines lexical token kinds and trivia for terbium sources.
// Invariants:
//   - Token.Text is the exact source slice covered by Token.Span.
//   - Whitespace and comments never appear in the main token stream; they are
//     attached to the following token as Leading trivia.
//   - The stream always ends with exactly one EOF token.
package token

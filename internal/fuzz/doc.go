// Package fuzztests houses Go fuzz harnesses for the playground pipeline
// (source -> lexer -> parser -> harness). They guard against panics escaping
// a request, hangs in error recovery and responses that change between runs.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.
package fuzztests

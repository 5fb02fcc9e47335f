// Package fuzztests houses Go fuzz harnesses for the formatting pipeline
// (markup -> lexer -> parser -> rules -> fixes). They guard against panics,
// hangs and broken span invariants on arbitrary input.
//
// Назначение: прогонять произвольные байты через markup/lexer/parser и lint,
// проверять инварианты дерева и согласованность исправлений с текстом.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.
//
// Зависимости: internal/source, internal/markup, internal/lexer,
// internal/parser, internal/lint, internal/fix, internal/testkit.
package fuzztests

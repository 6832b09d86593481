// Package console реализует вывод хода операций в терминал, подтверждения и журнал CLI:
//   - Reporter: цветные сообщения (lipgloss) и индикатор прогресса;
//   - Prompt: вопросы да/нет через stdin, только для интерактивного терминала;
//   - NewLogger: slog в текстовом виде для терминала и JSON для конвейеров.
package console

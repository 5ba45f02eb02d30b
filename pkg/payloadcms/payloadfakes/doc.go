// Package payloadfakes: заглушки сервисов payloadcms для тестов:
// каждый метод делегирует в поле-функцию, которое тест может подменить.
package payloadfakes

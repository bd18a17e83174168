package common

// Header names shared by the REST server and the API client.
const (
	PinHeaderName       = "X-PIN-Code"
	RequestIDHeaderName = "X-Request-ID"
)

// ServiceName is reported by the health endpoint.
const ServiceName = "document-verifier-api"

// User-facing messages. The registry is Russian-language, and clients show
// these strings verbatim.
const (
	MsgDocumentNotFound = "Документ не найден в реестре"
	MsgInvalidPin       = "Неверный PIN-код"
	MsgAuthFailed       = "Ошибка аутентификации"
	MsgTimeout          = "Таймаут соединения"
	MsgConnection       = "Ошибка соединения с сервером"
	MsgServerErrorFmt   = "Ошибка сервера: %d"
	MsgMalformed        = "Некорректный ответ сервера"
	MsgCanceled         = "Проверка отменена"
	MsgNoResponse       = "Не удалось получить ответ от сервера"
	MsgNotADocument     = "Не является документом"
)

package internal

const (
	COOKIE_LANGUAGE_NAME = "serviceplan_lang"
	SESSION_VALUE_NAME   = "session"
)

package discord

import "errors"

var (
	errWebhookRequired = errors.New("discord: webhook id and token are required")
	errUnexpectedCode  = errors.New("discord: unexpected status code from webhook")
)

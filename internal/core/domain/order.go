package domain

// An OrderMessage is the composed outbound order payload. DeepLink
// points at the external messaging channel with the text prefilled;
// nothing is sent by this system.
type OrderMessage struct {
	Text     string
	DeepLink string
}

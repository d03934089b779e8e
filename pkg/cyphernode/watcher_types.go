package cyphernode

import validation "github.com/go-ozzo/ozzo-validation/v4"

// Callbacks are the URLs the gateway calls when a watched address sees a
// transaction (0-conf) and when that transaction gets its first
// confirmation.
type Callbacks struct {
	UnconfirmedCallbackURL string `json:"unconfirmedCallbackURL"`
	ConfirmedCallbackURL   string `json:"confirmedCallbackURL"`
}

func (c Callbacks) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.UnconfirmedCallbackURL, validation.Required),
		validation.Field(&c.ConfirmedCallbackURL, validation.Required),
	)
}

type WatchRequest struct {
	Address string `json:"address"`
	Callbacks
	EventMessage string `json:"eventMessage,omitempty"`
	Label        string `json:"label"`
}

func (r WatchRequest) Validate() error {
	if err := validation.ValidateStruct(&r,
		validation.Field(&r.Address, validation.Required),
	); err != nil {
		return err
	}
	return r.Callbacks.Validate()
}

// WatchedAddress echoes a watch registration.
type WatchedAddress struct {
	Address string `json:"address"`
	Callbacks
	EventMessage *string `json:"eventMessage,omitempty"`
	Label        string  `json:"label,omitempty"`
}

type UnwatchedAddress struct {
	Event   string `json:"event"`
	Address string `json:"address"`
	Callbacks
}

type ActiveWatches struct {
	Watches []Watch `json:"watches"`
}

type Watch struct {
	ID       int64  `json:"id"`
	Address  string `json:"address"`
	Imported bool   `json:"imported"`
	Callbacks
	WatchingSince string  `json:"watching_since"`
	EventMessage  *string `json:"eventMessage,omitempty"`
	Label         string  `json:"label,omitempty"`
}

// WatchXpubRequest watches every address derived from Pub32 along Path,
// starting at index NStart. Path must end with "n", e.g. "0/1/n".
type WatchXpubRequest struct {
	Label  string `json:"label"`
	Pub32  string `json:"pub32"`
	Path   string `json:"path"`
	NStart int64  `json:"nstart"`
	Callbacks
}

func (r WatchXpubRequest) Validate() error {
	if err := validation.ValidateStruct(&r,
		validation.Field(&r.Label, validation.Required),
		validation.Field(&r.Pub32, validation.Required, extendedPubKey),
		validation.Field(&r.Path, validation.Required, validation.Match(xpubPathRegexp)),
		validation.Field(&r.NStart, validation.Min(int64(0))),
	); err != nil {
		return err
	}
	return r.Callbacks.Validate()
}

type WatchedXpub struct {
	ID     FlexInt `json:"id"`
	Event  string  `json:"event"`
	Pub32  string  `json:"pub32"`
	Label  string  `json:"label"`
	Path   string  `json:"path"`
	NStart FlexInt `json:"nstart"`
	Callbacks
}

type UnwatchedXpub struct {
	Event string `json:"event"`
	Pub32 string `json:"pub32,omitempty"`
	Label string `json:"label,omitempty"`
}

type ActiveXpubWatches struct {
	Watches []XpubWatch `json:"watches"`
}

type XpubWatch struct {
	ID             FlexInt `json:"id"`
	Pub32          string  `json:"pub32"`
	Label          string  `json:"label"`
	DerivationPath string  `json:"derivation_path"`
	LastImportedN  FlexInt `json:"last_imported_n"`
	Callbacks
	WatchingSince string `json:"watching_since"`
}

package wallet

// Type describes how an account's key material originated.
type Type string

const (
	TypeHot      Type = "hot"
	TypeMnemonic Type = "mnemonic"
	TypeLedger   Type = "ledgerBt"
	TypeSSS      Type = "sss"
)

// recordVersion is stamped on every newly written wallet record.
const recordVersion = 2

// Wallet is one user-controlled account record. The lowercase address is
// the unique key; Position defines display order and stays dense across
// mutations.
type Wallet struct {
	Address       string    `json:"address"`
	Name          string    `json:"name"`
	CardStyle     CardStyle `json:"card_style"`
	ColorFrom     string    `json:"color_from"`
	ColorTo       string    `json:"color_to"`
	ColorPattern  string    `json:"color_pattern"`
	Pattern       string    `json:"pattern"`
	Type          Type      `json:"type"`
	Path          string    `json:"path"`
	AccountID     string    `json:"account_id"`
	RootAddress   string    `json:"root_address"`
	MnemonicSaved bool      `json:"mnemonic_saved"`
	IsHidden      bool      `json:"is_hidden"`
	IsMain        bool      `json:"is_main"`
	Subscription  string    `json:"subscription"`
	Version       int       `json:"version"`
	Position      int       `json:"position"`
}

// LegacyRecord is the pre-migration persisted form. Only identity-bearing
// fields survive the one-time migration; cosmetics are re-derived.
type LegacyRecord struct {
	Address   string
	Name      string
	AccountID string
	Path      string
	Type      Type
	CardStyle CardStyle
	Pattern   string
}

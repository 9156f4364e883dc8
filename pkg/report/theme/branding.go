package theme

// Branding carries the product and network wording printed on the report.
type Branding struct {
	Product         string
	VerificationTag string
	Badge           string

	LogoTop     string
	LogoBottom  string
	LogoCaption string

	CoverSubtitle string
	PlatformLine  string

	NetworkName     string
	NetworkFullName string
	ChainID         int64
	Consensus       string
	BlockTime       string
	RPCHost         string
	ExplorerHost    string

	ContractLabel   string
	ContractAddress string

	MintedAsset  string
	ReserveAsset string

	// SignerRoles names the approval stage of the 1st, 2nd and 3rd signature.
	SignerRoles [3]string
}

func DefaultBranding() Branding {
	return Branding{
		Product:         "Mint Lemon Explorer - Treasury Minting Platform",
		VerificationTag: "LemonChain Verified",
		Badge:           "LEMONCHAIN VERIFIED",

		LogoTop:     "MINT",
		LogoBottom:  "LEMON",
		LogoCaption: "EXPLORER",

		CoverSubtitle: "LEMONCHAIN BLOCKCHAIN VERIFICATION",
		PlatformLine:  "Professional Audit Certificate",

		NetworkName:     "LemonChain",
		NetworkFullName: "LemonChain Mainnet",
		ChainID:         1006,
		Consensus:       "Proof of Authority",
		BlockTime:       "~3 seconds",
		RPCHost:         "rpc.lemonchain.io",
		ExplorerHost:    "explorer.lemonchain.io",

		ContractLabel:   "VUSD Contract",
		ContractAddress: "0x0bF07709c94D32c9F000c51D4Ee0BCFfEeb1011b",

		MintedAsset:  "VUSD",
		ReserveAsset: "USD",

		SignerRoles: [3]string{"DCB Treasury / DAES", "Treasury Minting", "VUSDMinter Contract"},
	}
}

package constants

const (
	BlockchainSteem = "steem"
)

// 打赏支持的币种，对应各自所在的链
var TipCurrencyChains = map[string]string{
	"steem": BlockchainSteem,
	"sbd":   BlockchainSteem,
}

// 每条打赏的处理结果
const (
	TipStatusRecorded            = "recorded"
	TipStatusDuplicate           = "duplicate"
	TipStatusUnsupportedCurrency = "unsupported_currency"
	TipStatusNoLinkedAddress     = "no_linked_address"
	TipStatusTransferNotFound    = "transfer_not_found"
)

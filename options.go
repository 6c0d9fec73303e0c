package tonlaunch

import "github.com/rs/zerolog"

// ContractOption configures a contract wrapper.
type ContractOption func(*Contract)

// WithWorkchain sets the workchain used to derive addresses from a StateInit.
// Default is 0 (basechain).
func WithWorkchain(wc int8) ContractOption {
	return func(c *Contract) {
		c.workchain = wc
	}
}

// WithLogger sets the logger for a contract wrapper.
func WithLogger(l zerolog.Logger) ContractOption {
	return func(c *Contract) {
		c.log = l
	}
}

// ProviderOption configures a LiteProvider.
type ProviderOption func(*LiteProvider)

// WithProviderLogger sets the logger for a LiteProvider.
func WithProviderLogger(l zerolog.Logger) ProviderOption {
	return func(p *LiteProvider) {
		p.log = l
	}
}

// SenderOption configures a WalletSender.
type SenderOption func(*WalletSender)

// WithSenderLogger sets the logger for a WalletSender.
func WithSenderLogger(l zerolog.Logger) SenderOption {
	return func(s *WalletSender) {
		s.log = l
	}
}

// WithWaitConfirmation controls whether Send blocks until the wallet
// transaction lands. Default is true.
func WithWaitConfirmation(wait bool) SenderOption {
	return func(s *WalletSender) {
		s.wait = wait
	}
}

// BatchOption configures a Batch.
type BatchOption func(*batchConfig)

// batchConfig holds configuration for Batch.Plan and Batch.Send.
type batchConfig struct {
	maxMessages int
}

// DefaultMaxMessages is the per-transaction message limit of v3 and v4 wallets.
const DefaultMaxMessages = 4

// MaxBatchMessages is the largest limit a batch accepts (highload wallets).
const MaxBatchMessages = 255

func defaultBatchConfig() *batchConfig {
	return &batchConfig{maxMessages: DefaultMaxMessages}
}

// WithMaxMessages sets the per-transaction message limit.
// Values above 255 are capped and values below 1 are ignored.
func WithMaxMessages(max int) BatchOption {
	return func(c *batchConfig) {
		if max < 1 {
			return
		}
		if max > MaxBatchMessages {
			max = MaxBatchMessages
		}
		c.maxMessages = max
	}
}

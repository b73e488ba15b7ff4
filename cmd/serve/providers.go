package serve

import (
	"time"

	"github.com/zarlabs/zardian/provider"
	"github.com/zarlabs/zardian/provider/binance"
	"github.com/zarlabs/zardian/provider/bybit"
	"github.com/zarlabs/zardian/provider/luno"
	"github.com/zarlabs/zardian/provider/static"
)

// defaultProviders returns the default exchange quote providers
func defaultProviders(staticQuotes bool) []provider.Provider {
	if staticQuotes {
		return static.DefaultProviders()
	}

	var (
		// Binance spot ticker
		binanceProvider = binance.NewProvider(
			binance.TickerURL,
			time.Second*30,
		)

		// Luno ticker + scraped fee schedule
		lunoProvider = luno.NewProvider(
			luno.TickerURL,
			luno.FeesURL,
			time.Second*30,
		)

		// Bybit v5 spot ticker
		bybitProvider = bybit.NewProvider(
			bybit.TickerURL,
			time.Second*30,
		)
	)

	return []provider.Provider{
		binanceProvider,
		lunoProvider,
		bybitProvider,
	}
}

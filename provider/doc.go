// Package provider defines the exchange quote provider boundary.
//
// # Providers
//
// ## Binance
//
// Exchange: "binance"
// API: https://api.binance.com/api/v3/ticker/price
//
// Fetches the USDC/ZAR spot price from the public ticker endpoint.
// Trading fee is the standard 0.1% spot fee, withdrawals are a flat
// 1 USDC.
//
// ## Luno
//
// Exchange: "luno"
// API: https://api.luno.com/api/1/ticker
//
// Fetches the last trade price for the USDCZAR pair. The withdrawal
// fee is scraped from the Luno fees page (HTML); when the scrape
// fails, conservative defaults are used. Trading fee is the 0.5%
// taker fee.
//
// ## Bybit
//
// Exchange: "bybit"
// API: https://api.bybit.com/v5/market/tickers
//
// Fetches the spot last price for USDCZAR. Trading fee is the 0.3%
// taker fee (worst case).
//
// ## Static
//
// Fixed, locally-configured quotes for offline runs and tests.
//
// All ticker prices are quoted as ZAR per 1 USDC and inverted into
// the USDC-per-ZAR rate carried on the quote.
package provider

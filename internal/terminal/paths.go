package terminal

import "path/filepath"

// agentPaths is the well-known file layout the terminal agent reads
// and writes under the shared folder.
type agentPaths struct {
	orders               string
	messages             string
	marketData           string
	barData              string
	historicalTrades     string
	historicalDataPrefix string
	commandsPrefix       string
}

func newAgentPaths(filesPath, prefix string) agentPaths {
	base := filepath.Join(filesPath, prefix)
	return agentPaths{
		orders:               filepath.Join(base, "Orders.json"),
		messages:             filepath.Join(base, "Messages.json"),
		marketData:           filepath.Join(base, "Market_Data.json"),
		barData:              filepath.Join(base, "Bar_Data.json"),
		historicalTrades:     filepath.Join(base, "Historical_Trades.json"),
		historicalDataPrefix: filepath.Join(base, "Historical_Data_"),
		commandsPrefix:       filepath.Join(base, "Commands_"),
	}
}

func (p agentPaths) historicalData(symbol string) string {
	return p.historicalDataPrefix + symbol + ".json"
}

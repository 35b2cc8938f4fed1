package domain

type Table string

const (
	TableListings  Table = "listings"
	TableAuctions  Table = "auctions"
	TableTreasury  Table = "treasury"
	TableEvents    Table = "market_events"
	TableSequences Table = "sequences"
)

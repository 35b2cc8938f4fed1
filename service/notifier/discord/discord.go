package discord

import (
	"fmt"
	"math/big"

	"github.com/bwmarrin/discordgo"

	"github.com/x-xyz/market/base/ctx"
	"github.com/x-xyz/market/base/log"
	"github.com/x-xyz/market/domain"
	"github.com/x-xyz/market/domain/event"
)

// Sender is the part of a discordgo session the notifier uses.
type Sender interface {
	ChannelMessageSendEmbed(channelID string, embed *discordgo.MessageEmbed) (*discordgo.Message, error)
}

type Config struct {
	BotKey    string       `mapstructure:"botKey"`
	ChannelId string       `mapstructure:"channelId"`
	Types     []event.Type `mapstructure:"types"`
}

// DefaultTypes are the events posted when Config.Types is empty.
var DefaultTypes = []event.Type{
	event.TypeListingSold,
	event.TypeAuctionFinished,
	event.TypeSwapFailed,
	event.TypePayoutFailed,
}

var titles = map[event.Type]string{
	event.TypeListingCreated:  "Item listed!",
	event.TypeListingSold:     "Item sold!",
	event.TypeAuctionCreated:  "Auction started!",
	event.TypeBidPlaced:       "New bid",
	event.TypeBidRefunded:     "Bid refunded",
	event.TypeAuctionFinished: "Auction finished!",
	event.TypeLiquidityAdded:  "Liquidity added",
	event.TypeSwapFailed:      "Liquidity conversion failed",
	event.TypeWalletsChanged:  "Wallets changed",
	event.TypePayoutFailed:    "Payout failed",
}

func Dial(botKey string) (*discordgo.Session, error) {
	return discordgo.New(fmt.Sprintf("Bot %s", botKey))
}

type notifier struct {
	sender    Sender
	channelId string
	payToken  domain.PayToken
	types     map[event.Type]bool
}

func New(sender Sender, cfg Config, payToken domain.PayToken) event.Notifier {
	types := cfg.Types
	if len(types) == 0 {
		types = DefaultTypes
	}
	n := &notifier{
		sender:    sender,
		channelId: cfg.ChannelId,
		payToken:  payToken,
		types:     map[event.Type]bool{},
	}
	for _, t := range types {
		n.types[t] = true
	}
	return n
}

func (n *notifier) Notify(c ctx.Ctx, e *event.Event) error {
	if !n.types[e.Type] {
		return nil
	}
	if _, err := n.sender.ChannelMessageSendEmbed(n.channelId, n.embed(e)); err != nil {
		c.WithFields(log.Fields{"err": err, "id": e.Id}).Error("ChannelMessageSendEmbed failed")
		return err
	}
	return nil
}

func (n *notifier) embed(e *event.Event) *discordgo.MessageEmbed {
	fields := []*discordgo.MessageEmbedField{
		{Name: "Market", Value: e.Market, Inline: true},
	}
	if e.SaleId != nil {
		fields = append(fields, &discordgo.MessageEmbedField{Name: "Sale", Value: fmt.Sprint(*e.SaleId), Inline: true})
	}
	if e.AssetContract != "" {
		fields = append(fields, &discordgo.MessageEmbedField{Name: "Asset", Value: fmt.Sprintf("%s #%s x%s", e.AssetContract, e.AssetId, e.Quantity)})
	}
	if e.Seller != "" {
		fields = append(fields, &discordgo.MessageEmbedField{Name: "Seller", Value: string(e.Seller)})
	}
	if e.Account != "" {
		fields = append(fields, &discordgo.MessageEmbedField{Name: accountLabel(e.Type), Value: string(e.Account)})
	}
	if amount, ok := new(big.Int).SetString(e.Amount, 10); ok {
		fields = append(fields, &discordgo.MessageEmbedField{Name: "Price", Value: n.payToken.Format(amount)})
	}
	if reason, ok := e.Data["reason"]; ok {
		fields = append(fields, &discordgo.MessageEmbedField{Name: "Reason", Value: reason})
	}

	title, ok := titles[e.Type]
	if !ok {
		title = string(e.Type)
	}
	return &discordgo.MessageEmbed{
		Title:     title,
		Fields:    fields,
		Timestamp: e.CreatedAt.UTC().Format("2006-01-02T15:04:05Z"),
	}
}

func accountLabel(t event.Type) string {
	switch t {
	case event.TypeListingSold:
		return "Buyer"
	case event.TypeAuctionFinished:
		return "Winner"
	case event.TypeWalletsChanged:
		return "Admin"
	case event.TypePayoutFailed:
		return "Payee"
	}
	return "Bidder"
}

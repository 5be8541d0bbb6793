package slack

import (
	"fmt"
	"strings"

	slackclient "github.com/Apurer/go-order-tracker/internal/clients/http/slack"
	ordersdomain "github.com/Apurer/go-order-tracker/internal/domains/orders/domain"
)

var statusColors = map[ordersdomain.Status]string{
	ordersdomain.StatusPending:   "#FFA500",
	ordersdomain.StatusConfirmed: "#2196F3",
	ordersdomain.StatusShipped:   "#9C27B0",
	ordersdomain.StatusDelivered: "#4CAF50",
	ordersdomain.StatusCancelled: "#F44336",
}

var statusEmojis = map[ordersdomain.Status]string{
	ordersdomain.StatusPending:   ":hourglass_flowing_sand:",
	ordersdomain.StatusConfirmed: ":white_check_mark:",
	ordersdomain.StatusShipped:   ":package:",
	ordersdomain.StatusDelivered: ":tada:",
	ordersdomain.StatusCancelled: ":x:",
}

// buildMessage renders the Block Kit notification from current order state.
// Presentation varies by event; the fields always reflect what is persisted
// now, not a snapshot from enqueue time.
func buildMessage(order *ordersdomain.Order, event ordersdomain.Event, channel string) slackclient.Message {
	color, ok := statusColors[order.Status]
	if !ok {
		color = "#757575"
	}
	emoji, ok := statusEmojis[order.Status]
	if !ok {
		emoji = ":memo:"
	}

	title := fmt.Sprintf("%s Order Status Updated", emoji)
	if event == ordersdomain.EventCreated {
		title = fmt.Sprintf("%s New Order Created", emoji)
	}
	statusLabel := strings.ToUpper(string(order.Status))
	text := fmt.Sprintf("%s: %s - %s (%s)", title, order.OrderNumber, order.CustomerName, statusLabel)

	return slackclient.Message{
		Channel: channel,
		Text:    text,
		Attachments: []slackclient.Attachment{{
			Color: color,
			Blocks: []slackclient.Block{
				{
					Type: "header",
					Text: &slackclient.TextObject{Type: "plain_text", Text: title},
				},
				{
					Type: "section",
					Fields: []slackclient.TextObject{
						{Type: "mrkdwn", Text: fmt.Sprintf("*Order Number:*\n%s", order.OrderNumber)},
						{Type: "mrkdwn", Text: fmt.Sprintf("*Customer:*\n%s", order.CustomerName)},
						{Type: "mrkdwn", Text: fmt.Sprintf("*Product:*\n%s", order.ProductName)},
						{Type: "mrkdwn", Text: fmt.Sprintf("*Quantity:*\n%d", order.Quantity)},
						{Type: "mrkdwn", Text: fmt.Sprintf("*Price:*\n$%s", order.Price)},
						{Type: "mrkdwn", Text: fmt.Sprintf("*Status:*\n%s", statusLabel)},
					},
				},
			},
		}},
	}
}

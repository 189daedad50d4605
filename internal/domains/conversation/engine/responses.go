package engine

import (
	"fmt"
	"strings"

	orderModel "shopbot-backend/internal/domains/order/model"
)

const welcomeMessage = "Welcome to the online store!\n\n" +
	"I can help you:\n" +
	"- See the products: \"show me the products\"\n" +
	"- Add to your cart: \"add 2 Basic Blue T-Shirt\"\n" +
	"- View your cart: \"what's in my cart?\"\n" +
	"- Check out: \"I want to complete my purchase\"\n" +
	"- Leave: \"exit\"\n\n" +
	"What would you like to do?"

const farewellMessage = "Thanks for visiting. See you soon!"

const unknownIntentMessage = "I'm not sure I understood that. You can browse the products, " +
	"manage your cart, view it, or check out."

const classifierDownMessage = "I'm having trouble understanding messages right now. " +
	"Please try again in a moment."

const catalogDownMessage = "The catalog is unavailable right now. Please try again in a moment."

const extractionFailedMessage = "I didn't get that. Try something like " +
	"\"add 2 Basic Blue T-Shirt\" or \"I want item 1\"."

const productNotFoundMessage = "I couldn't find that product. You can say " +
	"\"show me the products\" to see what's available."

const indexOutOfRangeMessage = "That number doesn't match the last product list. " +
	"Say \"show me the products\" and pick an item from the list."

const noContextMessage = "I'm not sure which product you mean. " +
	"Tell me its name or pick one from the product list."

const emptyCartMessage = "Your cart is empty.\n\nYou can see the products with \"show me the products\"."

const checkoutEmptyCartMessage = "Your cart is empty. Add some products before checking out."

const askNameMessage = "To complete your purchase I need a couple of details.\nWhat's your name?"

const askNameAgainMessage = "Sorry, I didn't catch your name. What's your name?"

const outOfContextFallback = "I'm a shopping assistant, so I can only help with our products. " +
	"Would you like to see the catalog?"

func askCityMessage(name string) string {
	return fmt.Sprintf("Perfect, %s. Which city should we ship to?", name)
}

func formatOrderConfirmation(order *orderModel.Order) string {
	var b strings.Builder
	b.WriteString("Order confirmed!\n\n")
	fmt.Fprintf(&b, "Order %s\n", order.OrderNumber)
	fmt.Fprintf(&b, "Customer: %s\n", order.CustomerName)
	fmt.Fprintf(&b, "City: %s\n\n", order.CustomerCity)
	b.WriteString("Items:\n")
	for _, item := range order.Items {
		fmt.Fprintf(&b, "- %d x %s - $%s\n", item.Quantity, item.ProductName, item.Subtotal.StringFixed(2))
	}
	fmt.Fprintf(&b, "\nTotal: $%s\n\nThank you for your purchase!", order.Total.StringFixed(2))
	return b.String()
}

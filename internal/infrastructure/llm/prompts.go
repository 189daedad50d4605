package llm

import (
	"fmt"
	"strings"
)

const intentSystemPrompt = `You are an intent classifier for an e-commerce chatbot.

Classify the user message into EXACTLY ONE of these intents:
1. BROWSE - see the available products
2. MANAGE_CART - add or remove products from the cart
3. VIEW_CART - see the cart contents
4. CHECKOUT - complete the purchase or provide checkout data
5. EXIT - leave the conversation
6. OUT_OF_CONTEXT - questions unrelated to shopping
7. UNKNOWN - unclear intent

IMPORTANT - CONTEXTUAL ANSWERS:
- If the bot just asked whether the user wants to check out and the user
  answers affirmatively ("yes", "ok", "sure", "go ahead"), the intent is CHECKOUT.
- If the user answers "no" to a checkout question, the intent is UNKNOWN
  so they can keep shopping.
- Short answers like "yes", "no", "ok" must be read against the recent
  conversation.

Respond with ONLY the intent name. No explanations.`

const extractionSystemPrompt = `You extract cart actions from e-commerce chat messages.

Respond with ONLY a JSON object, no prose, in this schema:
{"action": "add"|"remove", "quantity": <integer>, "product_reference": {"type": "name"|"id"|"index"|"last", "value": "<string>"}}

Rules:
- "quantity" defaults to 1 when the message does not state one.
- "index" means the user referred to a numbered position in the last
  product listing; put the number in "value".
- "last" means the user referred back to the product just mentioned
  ("add 2 more", "remove it"); "value" may be empty.
- When candidate products are listed, prefer returning the candidate's
  exact name or id in "value".`

const smallTalkSystemPrompt = `You are a shopping assistant for an online store. The user asked
something unrelated to shopping. Reply with one short, polite sentence
declining, then remind them you can show products, manage their cart,
and complete purchases.`

func buildIntentMessages(message string, convCtx Context) []chatMessage {
	msgs := []chatMessage{{Role: "system", Content: intentSystemPrompt}}

	if history := formatHistory(convCtx.History); history != "" {
		msgs = append(msgs, chatMessage{Role: "system", Content: history})
	}

	var facts []string
	if convCtx.Stage == "checkout" {
		if convCtx.CustomerName == "" {
			facts = append(facts, "Waiting for the customer's name.")
		} else if convCtx.CustomerCity == "" {
			facts = append(facts, "Waiting for the customer's city.")
		}
	}
	if convCtx.CartItemCount > 0 {
		facts = append(facts, fmt.Sprintf("The cart has %d items.", convCtx.CartItemCount))
	}
	if convCtx.LastProductName != "" {
		facts = append(facts, fmt.Sprintf("Last mentioned product: %s.", convCtx.LastProductName))
	}
	if len(facts) > 0 {
		msgs = append(msgs, chatMessage{Role: "system", Content: "CONTEXT:\n" + strings.Join(facts, "\n")})
	}

	msgs = append(msgs, chatMessage{Role: "user", Content: message})
	return msgs
}

func buildExtractionMessages(message string, convCtx Context) []chatMessage {
	msgs := []chatMessage{{Role: "system", Content: extractionSystemPrompt}}

	if convCtx.LastProductName != "" {
		msgs = append(msgs, chatMessage{
			Role:    "system",
			Content: fmt.Sprintf("Last mentioned product: %s", convCtx.LastProductName),
		})
	}

	if len(convCtx.Candidates) > 0 {
		var b strings.Builder
		b.WriteString("CANDIDATE PRODUCTS:\n")
		for _, c := range convCtx.Candidates {
			fmt.Fprintf(&b, "- id=%s name=%q price=%s stock=%d category=%s\n",
				c.ID, c.Name, c.Price, c.Stock, c.Category)
		}
		msgs = append(msgs, chatMessage{Role: "system", Content: b.String()})
	}

	if history := formatHistory(convCtx.History); history != "" {
		msgs = append(msgs, chatMessage{Role: "system", Content: history})
	}

	msgs = append(msgs, chatMessage{Role: "user", Content: message})
	return msgs
}

func buildSmallTalkMessages(message string) []chatMessage {
	return []chatMessage{
		{Role: "system", Content: smallTalkSystemPrompt},
		{Role: "user", Content: message},
	}
}

// formatHistory renders the last few turns for the classifier. Long
// messages are truncated; the classifier only needs the gist.
func formatHistory(turns []Turn) string {
	if len(turns) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString("RECENT CONVERSATION:\n")
	for _, t := range turns {
		role := "User"
		if t.Role != "user" {
			role = "Bot"
		}
		content := t.Content
		if len(content) > 200 {
			content = content[:200]
		}
		fmt.Fprintf(&b, "%s: %s\n", role, content)
	}
	return b.String()
}

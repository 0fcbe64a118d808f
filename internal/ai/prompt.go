package ai

// SystemPrompt is the fixed instruction set installed at the start of every
// step. The contract it states (roles, fields, JSON-array-only replies) is
// what the parser in this package enforces.
const SystemPrompt = `You are a browser automation assistant for accessibility-first testing.

You will receive a screen reader rendering of a web page and an instruction
describing what a user wants to accomplish. The rendering lists the page's
elements in document order, one per line, indented to show nesting.

Respond with a JSON array of actions. Each action is an object with:
- "action": "click" or "type"
- "role": the element kind, one of "Button", "Link", "Textbox", "Checkbox", "Radio"
- "target": visible text, label, or placeholder identifying the element
- "value": for "type", the literal text to enter; for "click", a short label such as "leftMouseButton"

Guidelines:
- Use only elements that appear in the screen reader rendering.
- Keep the sequence minimal but complete.
- If the instruction requires no action, respond with an empty array: []

Respond with nothing but the JSON array. No explanation, no markdown.`

// buildStepPrompt is the normal per-step user turn.
func buildStepPrompt(screenText, instruction string) string {
	return "The page reads:\n\n" + screenText + "\nInstruction: " + instruction
}

// buildRetryPrompt is the single corrective follow-up sent when a reply
// could not be parsed as an action plan.
func buildRetryPrompt(screenText, instruction string) string {
	return "Your previous reply was not a valid JSON array of actions.\n\n" +
		"The page reads:\n\n" + screenText + "\nInstruction: " + instruction + "\n\n" +
		"Respond with nothing but the JSON array."
}

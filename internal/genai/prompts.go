package genai

import "fmt"

// systemPrompt pins the assistant to the supplied facts. Answers are in
// Mongolian regardless of the question language.
const systemPrompt = `Та бол Way Academy-гийн албан ёсны туслах чатбот.
Дараах дүрмийг баримтлаарай:
1. ЗӨВХӨН өгөгдсөн мэдээллээс хариулт өгөх
2. Монгол хэлээр, найрсаг, товч хариулт өгөх
3. Үнэ, цаг, багшийн мэдээллийг тодорхой харуулах
4. Хэрэв мэдээлэл олдохгүй бол "Уучлаарай, энэ асуултанд хариулж чадахгүй байна" гэж хэлэх`

// buildUserPrompt pairs the question with its fact context.
func buildUserPrompt(question, factContext string) string {
	return fmt.Sprintf(`Хэрэглэгчийн асуулт: %s

Доорх мэдээллээс хариулт өгнө үү:
%s

Хариулт:`, question, factContext)
}

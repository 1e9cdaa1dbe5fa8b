package prompt

// modifiers はファンクションIDごとにプロンプトへ追記する英語の修飾句です。
var modifiers = map[string]string{
	"cinematic":       "cinematic lighting, 35mm lens, shallow depth of field, movie scene, 8k resolution, highly detailed",
	"digital-art":     "digital art style, vibrant colors, clean lines, concept art, artstation trending",
	"photoreal":       "photorealistic, 8k, highly detailed, raw photo, natural lighting, sharp focus",
	"cyberpunk":       "cyberpunk aesthetic, neon green and purple lighting, futuristic city, high tech, rainy street",
	"variations":      "creative variation of this image, maintaining composition but changing details",
	"style-transfer":  "in the artistic style described, maintaining the original structure",
	"restore-old":     "restore old photo, remove scratches, fix tears, colorize if black and white, sharpen details, remove blur, high definition, restoration",
	"merge-people":    "merge these people together into one scene, make them hugging or standing close together realistically, seamless blend, consistent lighting, high quality",
	"age-progression": "realistic age progression or regression, transform the subject to look significantly older or younger based on context, maintaining facial identity, realistic skin texture, high detail",
	"luxury-life":     "place subject in a luxurious setting, expensive mansion background, luxury sports car nearby, wearing expensive haute couture fashion, wealth, golden hour lighting, sophisticated atmosphere, high quality",
}

// Modifier はIDに対応する修飾句を返します。
func Modifier(functionID string) (string, bool) {
	clause, ok := modifiers[functionID]
	return clause, ok
}

// FunctionIDs はテーブルに登録されているIDの一覧です（順不同）。
func FunctionIDs() []string {
	ids := make([]string, 0, len(modifiers))
	for id := range modifiers {
		ids = append(ids, id)
	}
	return ids
}

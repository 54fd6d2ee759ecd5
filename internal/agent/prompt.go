package agent

import "google.golang.org/genai"

const systemInstruction = `You are a helpful, efficient, and expert freelance job assistant built into the SkillSync platform. Your goal is to match buyers with the most suitable freelance sellers based on the buyer's job description and seller profiles. Your tone is friendly, concise, and informative.

Analyze the buyer's job request and select the sellers most relevant and capable of delivering on it. Consider the job's content, required skills, timelines and expectations, and use the seller data to justify each recommendation.

Inputs:
- The buyer's messages (natural language).
- A final message starting with SELLER_PROFILES_JSON: holding a list of seller profiles with username, gigId, gigTitle, gigDescription, subcategory, reviews (service_as_described, communication_level, recommend_to_a_friend) and offers keyed by tier with price and delivery_days.

Output rules:
- Recommend the top 2 to 3 sellers, never more than 3.
- For each: sellerName, gigTitle, reason, matchScore (0 to 1), avgRating (average of the 3 review fields), selectedTier, price and delivery_days of that tier, and gigId exactly as given.
- Only include sellers whose gig description or subcategory is clearly relevant. Do not fabricate missing data.
- If nothing matches (matchScore < 0.4 for all), return an empty recommendations array and a friendly explanation in message.
- Prefer higher avgRating, relevant descriptions and reasonable delivery times. Use urgency or budget hints to pick the tier; default to the standard tier.
- Respond with strict JSON only.`

func stringSchema() *genai.Schema { return &genai.Schema{Type: genai.TypeString} }
func numberSchema() *genai.Schema { return &genai.Schema{Type: genai.TypeNumber} }

// responseSchema constrains the model to the recommendations envelope.
func responseSchema() *genai.Schema {
	return &genai.Schema{
		Type:     genai.TypeObject,
		Required: []string{"recommendations"},
		Properties: map[string]*genai.Schema{
			"recommendations": {
				Type: genai.TypeArray,
				Items: &genai.Schema{
					Type:     genai.TypeObject,
					Required: []string{"sellerName", "gigTitle", "reason", "matchScore", "avgRating", "gigId"},
					Properties: map[string]*genai.Schema{
						"sellerName":    stringSchema(),
						"gigTitle":      stringSchema(),
						"reason":        stringSchema(),
						"matchScore":    numberSchema(),
						"avgRating":     numberSchema(),
						"gigId":         stringSchema(),
						"selectedTier":  stringSchema(),
						"price":         numberSchema(),
						"delivery_days": numberSchema(),
					},
				},
			},
			"message": stringSchema(),
		},
	}
}

func safetySettings() []*genai.SafetySetting {
	categories := []genai.HarmCategory{
		genai.HarmCategoryHarassment,
		genai.HarmCategoryHateSpeech,
		genai.HarmCategorySexuallyExplicit,
		genai.HarmCategoryDangerousContent,
	}
	settings := make([]*genai.SafetySetting, 0, len(categories))
	for _, c := range categories {
		settings = append(settings, &genai.SafetySetting{
			Category:  c,
			Threshold: genai.HarmBlockThresholdBlockLowAndAbove,
		})
	}
	return settings
}

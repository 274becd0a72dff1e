package harvester

import "strings"

// Canonical prompt categories, bilingual for the classifier prompt. The AI is
// told to answer with the English part only.
var PromptCategories = []string{
	"人像/肖像 (Portrait)",
	"风景 (Landscape)",
	"自然/动物 (Nature)",
	"建筑/城市 (Architecture)",
	"抽象艺术 (Abstract)",
	"科幻/未来 (Sci-Fi)",
	"奇幻/魔法 (Fantasy)",
	"动漫/卡通 (Anime)",
	"写实摄影 (Photography)",
	"插画/绘画 (Illustration)",
	"时尚/服装 (Fashion)",
	"食物/美食 (Food)",
	"产品/商业 (Product)",
	"电影感/影视 (Cinematic)",
	"恐怖/黑暗 (Horror)",
	"可爱/萌系 (Cute)",
	"复古/怀旧 (Retro)",
	"极简主义 (Minimalist)",
	"超现实 (Surreal)",
	"3D渲染 (3D Render)",
	"赛博朋克 (Cyberpunk)",
	"像素艺术 (Pixel Art)",
	"其他 (Other)",
}

var ValidCategories = []string{
	"Portrait", "Landscape", "Nature", "Architecture", "Abstract",
	"Sci-Fi", "Fantasy", "Anime", "Photography", "Illustration",
	"Fashion", "Food", "Product", "Cinematic", "Horror", "Cute",
	"Retro", "Minimalist", "Surreal", "3D Render", "Cyberpunk",
	"Pixel Art", "Other",
}

// CategoryMap folds the variants the AI actually returns into the canonical
// names. The non-identity entries are legacy formats seen in production.
var CategoryMap = map[string]string{
	"Portrait":     "Portrait",
	"Landscape":    "Landscape",
	"Nature":       "Nature",
	"Architecture": "Architecture",
	"Abstract":     "Abstract",
	"Sci-Fi":       "Sci-Fi",
	"Fantasy":      "Fantasy",
	"Anime":        "Anime",
	"Photography":  "Photography",
	"Illustration": "Illustration",
	"Fashion":      "Fashion",
	"Food":         "Food",
	"Product":      "Product",
	"Cinematic":    "Cinematic",
	"Horror":       "Horror",
	"Cute":         "Cute",
	"Retro":        "Retro",
	"Minimalist":   "Minimalist",
	"Surreal":      "Surreal",
	"3D Render":    "3D Render",
	"Cyberpunk":    "Cyberpunk",
	"Pixel Art":    "Pixel Art",
	"Other":        "Other",

	"Landscape/Nature":      "Landscape",
	"Animals":               "Nature",
	"Architecture/Urban":    "Architecture",
	"Urban":                 "Architecture",
	"Abstract Art":          "Abstract",
	"Sci-Fi/Futuristic":     "Sci-Fi",
	"Futuristic":            "Sci-Fi",
	"Fantasy/Magic":         "Fantasy",
	"Magic":                 "Fantasy",
	"Anime/Cartoon":         "Anime",
	"Cartoon":               "Anime",
	"Realistic Photography": "Photography",
	"Illustration/Painting": "Illustration",
	"Painting":              "Illustration",
	"Fashion/Clothing":      "Fashion",
	"Clothing":              "Fashion",
	"Product/Commercial":    "Product",
	"Commercial":            "Product",
	"Horror/Dark":           "Horror",
	"Dark":                  "Horror",
	"Cute/Kawaii":           "Cute",
	"Kawaii":                "Cute",
	"Vintage/Retro":         "Retro",
	"Vintage":               "Retro",
	"Clay / Felt":           "Cute",
	"Retro / Vintage":       "Retro",
	"3D":                    "3D Render",
}

// categoryMapKeys fixes the scan order of the fuzzy pass. Ranging over the
// map directly would resolve ambiguous inputs differently from call to call.
var categoryMapKeys = []string{
	"Portrait", "Landscape", "Nature", "Architecture", "Abstract",
	"Sci-Fi", "Fantasy", "Anime", "Photography", "Illustration",
	"Fashion", "Food", "Product", "Cinematic", "Horror", "Cute",
	"Retro", "Minimalist", "Surreal", "3D Render", "Cyberpunk",
	"Pixel Art", "Other",

	"Landscape/Nature", "Animals", "Architecture/Urban", "Urban",
	"Abstract Art", "Sci-Fi/Futuristic", "Futuristic", "Fantasy/Magic",
	"Magic", "Anime/Cartoon", "Cartoon", "Realistic Photography",
	"Illustration/Painting", "Painting", "Fashion/Clothing", "Clothing",
	"Product/Commercial", "Commercial", "Horror/Dark", "Dark",
	"Cute/Kawaii", "Kawaii", "Vintage/Retro", "Vintage", "Clay / Felt",
	"Retro / Vintage", "3D",
}

// MapCategory normalizes an AI-returned category name. Exact match first,
// then case-insensitive and substring matching, then Illustration as the
// default for anything unrecognized.
func MapCategory(rawCategory string) string {
	rawCategory = strings.TrimSpace(rawCategory)
	if rawCategory == "" {
		return "Other"
	}

	if mapped, ok := CategoryMap[rawCategory]; ok {
		return mapped
	}

	rawLower := strings.ToLower(rawCategory)
	for _, key := range categoryMapKeys {
		value := CategoryMap[key]
		keyLower := strings.ToLower(key)
		if keyLower == rawLower {
			return value
		}
		if strings.Contains(rawLower, keyLower) || strings.Contains(keyLower, rawLower) {
			return value
		}
	}

	for _, valid := range ValidCategories {
		if rawCategory == valid {
			return rawCategory
		}
	}

	return "Illustration"
}

// TagToCategory maps gallery tags to canonical categories. Used by the
// importers whose sources carry tags but no category.
var TagToCategory = map[string]string{
	"portrait":  "Portrait",
	"character": "Portrait",
	"face":      "Portrait",
	"headshot":  "Portrait",
	"selfie":    "Portrait",
	"person":    "Portrait",

	"landscape": "Landscape",
	"scenery":   "Landscape",
	"outdoor":   "Landscape",
	"mountain":  "Landscape",
	"beach":     "Landscape",
	"sunset":    "Landscape",

	"nature":   "Nature",
	"animal":   "Nature",
	"animals":  "Nature",
	"wildlife": "Nature",
	"pet":      "Nature",
	"cat":      "Nature",
	"dog":      "Nature",
	"bird":     "Nature",
	"flower":   "Nature",
	"plant":    "Nature",
	"forest":   "Nature",

	"architecture": "Architecture",
	"building":     "Architecture",
	"city":         "Architecture",
	"urban":        "Architecture",
	"interior":     "Architecture",
	"house":        "Architecture",
	"room":         "Architecture",

	"abstract":  "Abstract",
	"pattern":   "Abstract",
	"geometric": "Abstract",

	"sci-fi":     "Sci-Fi",
	"scifi":      "Sci-Fi",
	"futuristic": "Sci-Fi",
	"space":      "Sci-Fi",
	"robot":      "Sci-Fi",
	"spaceship":  "Sci-Fi",
	"alien":      "Sci-Fi",
	"gaming":     "Sci-Fi",

	"fantasy":  "Fantasy",
	"magic":    "Fantasy",
	"dragon":   "Fantasy",
	"fairy":    "Fantasy",
	"wizard":   "Fantasy",
	"medieval": "Fantasy",
	"mythical": "Fantasy",

	"anime":   "Anime",
	"cartoon": "Anime",
	"manga":   "Anime",
	"comic":   "Anime",
	"chibi":   "Anime",

	"photography":    "Photography",
	"photo":          "Photography",
	"realistic":      "Photography",
	"photorealistic": "Photography",
	"real":           "Photography",

	"illustration": "Illustration",
	"painting":     "Illustration",
	"artwork":      "Illustration",
	"drawing":      "Illustration",
	"art":          "Illustration",
	"infographic":  "Illustration",
	"typography":   "Illustration",
	"watercolor":   "Illustration",
	"oil-painting": "Illustration",

	"fashion":  "Fashion",
	"clothing": "Fashion",
	"outfit":   "Fashion",
	"model":    "Fashion",
	"dress":    "Fashion",

	"food":    "Food",
	"cuisine": "Food",
	"dish":    "Food",
	"cooking": "Food",

	"product":       "Product",
	"commercial":    "Product",
	"advertisement": "Product",
	"vehicle":       "Product",
	"car":           "Product",
	"logo":          "Product",

	"cinematic": "Cinematic",
	"movie":     "Cinematic",
	"film":      "Cinematic",
	"dramatic":  "Cinematic",

	"horror": "Horror",
	"dark":   "Horror",
	"creepy": "Horror",
	"scary":  "Horror",
	"gothic": "Horror",
	"zombie": "Horror",

	"cute":        "Cute",
	"kawaii":      "Cute",
	"adorable":    "Cute",
	"paper-craft": "Cute",
	"clay":        "Cute",
	"felt":        "Cute",
	"plush":       "Cute",

	"retro":     "Retro",
	"vintage":   "Retro",
	"nostalgic": "Retro",
	"80s":       "Retro",
	"90s":       "Retro",
	"classic":   "Retro",

	"minimalist": "Minimalist",
	"minimal":    "Minimalist",
	"simple":     "Minimalist",
	"clean":      "Minimalist",

	"surreal":    "Surreal",
	"surrealism": "Surreal",
	"dreamlike":  "Surreal",
	"dream":      "Surreal",

	"3d":        "3D Render",
	"3d render": "3D Render",
	"3d-render": "3D Render",
	"render":    "3D Render",
	"blender":   "3D Render",
	"cgi":       "3D Render",

	"cyberpunk": "Cyberpunk",
	"neon":      "Cyberpunk",
	"cyber":     "Cyberpunk",

	"pixel":     "Pixel Art",
	"pixel art": "Pixel Art",
	"pixel-art": "Pixel Art",
	"pixelart":  "Pixel Art",
	"8-bit":     "Pixel Art",
	"8bit":      "Pixel Art",
	"16-bit":    "Pixel Art",
	"16bit":     "Pixel Art",

	"creative": "Other",
	"other":    "Other",
}

// InferCategoryFromTags picks the first tag with a known mapping. No tags at
// all means Other; tags that all miss the table mean Illustration, since the
// gallery sources are overwhelmingly illustration work.
func InferCategoryFromTags(tags []string) string {
	if len(tags) == 0 {
		return "Other"
	}

	for _, tag := range tags {
		tagLower := strings.ToLower(strings.TrimSpace(tag))
		if category, ok := TagToCategory[tagLower]; ok {
			return category
		}
	}

	return "Illustration"
}

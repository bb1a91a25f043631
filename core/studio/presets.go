package studio

import (
	"context"
	"strings"
)

// WriterInstructions is the general-purpose writer persona used when a text
// request carries no instructions of its own.
const WriterInstructions = `คุณคือ นักเขียนมืออาชีพชาวไทย เชี่ยวชาญการเขียนนิยาย การใช้ภาษายุคปัจจุบัน ใช้ภาษาไทยที่ถูกต้อง และความคิดสร้างสรรค์`

// Preset is a one-shot writing tool: fixed instructions plus a prompt built
// from the user's input.
type Preset struct {
	ID           string
	Title        string
	Instructions string
	prompt       func(input string) string
}

// Prompt builds the request prompt for input.
func (p Preset) Prompt(input string) string {
	return p.prompt(input)
}

var presets = []Preset{
	{
		ID:           "plot",
		Title:        "ไอเดียพล็อตเรื่อง",
		Instructions: "You are an idea generator. Provide 3 unique, high-concept plot ideas based on the keywords. Use Thai and list them clearly.",
		prompt: func(input string) string {
			return "Generate 3 plot ideas for a story with the following keywords: " + input
		},
	},
	{
		ID:           "outline",
		Title:        "โครงเรื่อง 5 ช่วง",
		Instructions: "You are a story structure expert. Create a detailed 5-point outline (Introduction, Rising Action, Climax, Falling Action, Resolution) for the given plot. Use Thai.",
		prompt: func(input string) string {
			return "Create a 5-point story outline for this plot: " + input
		},
	},
	{
		ID:           "world",
		Title:        "สร้างโลกแฟนตาซี",
		Instructions: "You are a world-building consultant. Detail 4 key aspects (e.g., Magic System, Geography, Society, Conflict) of a fantasy world based on the concept. Use Thai and use markdown for formatting.",
		prompt: func(input string) string {
			return "Detail 4 key aspects of a fantasy world based on the concept: " + input
		},
	},
	{
		ID:           "refine",
		Title:        "ขัดเกลาสำนวน",
		Instructions: "You are a linguistic expert. Refine the style of the following Thai sentence/phrase to be more elegant, poetic, and suitable for narrative writing. Provide only the refined version.",
		prompt: func(input string) string {
			return `Refine this sentence into elegant Thai prose: "` + input + `"`
		},
	},
	{
		ID:           "names",
		Title:        "ตั้งชื่อตัวละครและสถานที่",
		Instructions: "You are a naming specialist. Generate 5 unique and evocative character names (3 male, 2 female) and 3 place names suitable for a story with the given theme. Use Thai and clearly label the results.",
		prompt: func(input string) string {
			return "Generate 5 character names (3 male, 2 female) and 3 place names for a story with the theme: " + input
		},
	},
	{
		ID:           "dialogue",
		Title:        "ปรับบทสนทนา",
		Instructions: "You are a dialogue coach. Improve the natural flow and emotional impact of the following Thai dialogue. Provide the revised dialogue only.",
		prompt: func(input string) string {
			return `Improve the following dialogue for natural flow and emotional impact: "` + input + `"`
		},
	},
	{
		ID:           "blurb",
		Title:        "คำโปรยปกหลัง",
		Instructions: "You are a marketing genius. Create a compelling, short book blurb/hook (ไม่เกิน 50 คำ) in Thai that captures the essence of the story concept.",
		prompt: func(input string) string {
			return "Create a compelling book blurb (max 50 words) for the story: " + input
		},
	},
	{
		ID:    "editor",
		Title: "บรรณาธิการวิจารณ์งานเขียน",
		Instructions: `คุณคือบรรณาธิการนวนิยายมืออาชีพ หน้าที่ของคุณคือวิจารณ์งานเขียนที่ได้รับอย่างสร้างสรรค์และตรงไปตรงมา กรุณาตอบกลับในรูปแบบ Markdown โดยแบ่งหัวข้อดังนี้:
1. **ตรวจสอบคำ (Editor):** ตรวจสอบภาษา ไวยากรณ์ คำ อื่นๆ
2. **จุดแข็ง (Strengths):** สิ่งที่ทำได้ดีแล้ว
3. **จุดที่ควรปรับปรุง (Weaknesses):** จุดที่ยังอ่อนหรือติดขัด
4. **คำแนะนำ (Suggestions):** วิธีแก้ปัญหาหรือเทคนิคเพิ่มเติม
5. **คะแนนภาพรวม:** (X/10)`,
		prompt: func(input string) string {
			return "ช่วยวิจารณ์และตรวจสอบงานเขียนนี้: \n\n" + input
		},
	},
}

// Presets returns every writing tool in display order.
func Presets() []Preset {
	out := make([]Preset, len(presets))
	copy(out, presets)
	return out
}

// LookupPreset finds a preset by ID.
func LookupPreset(id string) (Preset, bool) {
	for _, p := range presets {
		if p.ID == id {
			return p, true
		}
	}
	return Preset{}, false
}

// RunPreset runs the preset id on input. Like GenerateText it always returns
// displayable text; the error reports an unknown preset, blank input, or the
// reason the text is a fallback message.
func (s *Studio) RunPreset(ctx context.Context, id, input string) (string, error) {
	preset, ok := LookupPreset(id)
	if !ok {
		return "", ErrUnknownPreset
	}
	input = strings.TrimSpace(input)
	if input == "" {
		return MsgEmptyInput, ErrEmptyInput
	}

	result := s.GenerateTextResult(ctx, TextRequest{
		Prompt:       preset.Prompt(input),
		Instructions: preset.Instructions,
	})
	return result.Text, result.Err
}

package services

import "fmt"

type PromptBuilder struct{}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// BuildATSPrompt asks the model to act as an applicant tracking system and
// answer with a bare JSON object.
func (pb *PromptBuilder) BuildATSPrompt(resumeText, jobDescription string) string {
	return fmt.Sprintf(`Act as an ATS (Applicant Tracking System).
Job Description: %s
Resume Text: %s

Analyze the match. Output ONLY valid JSON in this format:
{
    "match_percentage": "85",
    "missing_keywords": ["Skill1", "Skill2"],
    "summary": "Brief summary here."
}

"match_percentage" is a number from 0 to 100 written as a string.
"missing_keywords" lists important job keywords that the resume does not mention.
Do not include explanations, markdown, or any text before or after the JSON.`,
		jobDescription, resumeText)
}

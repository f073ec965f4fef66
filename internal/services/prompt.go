package services

import (
	"fmt"
	"strings"
)

type PromptBuilder struct{}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// BuildEvaluationPrompt creates the prompt for the per-candidate oracle call.
// The skill names are listed verbatim so the response can be projected back
// onto the canonical lists.
func (pb *PromptBuilder) BuildEvaluationPrompt(jdText string, requiredSkills, niceToHaveSkills []string, resumeText string) string {
	return fmt.Sprintf(`You are a professional recruiting assistant. Your task is to evaluate how well a candidate's skills match a job's requirements.

JOB DESCRIPTION:
---
%s
---

REQUIRED SKILLS (IMPORTANT: Use EXACTLY these skill names in your response):
%s

NICE TO HAVE SKILLS (IMPORTANT: Use EXACTLY these skill names in your response):
%s

RESUME:
---
%s
---

INSTRUCTIONS:
- List every required or nice-to-have skill the resume demonstrates under "matched_skills", using the exact names above.
- List the required skills the resume does NOT demonstrate under "missing_skills".
- Explain your assessment in 2-4 sentences under "rationale".

Return your response in the following JSON format:
{
  "matched_skills": ["<skill>", ...],
  "missing_skills": ["<skill>", ...],
  "rationale": "<2-4 sentence explanation>"
}`,
		jdText,
		strings.Join(requiredSkills, ", "),
		strings.Join(niceToHaveSkills, ", "),
		resumeText)
}

// BuildSkillExtractionPrompt creates the prompt that splits a job description
// into required and nice-to-have skill lists.
func (pb *PromptBuilder) BuildSkillExtractionPrompt(jdText string) string {
	return fmt.Sprintf(`Analyze the job description and extract skills into 'required_skills' and 'nice_to_have_skills'.

Job Description:
---
%s
---

Return your response in the following JSON format:
{
  "required_skills": ["<skill>", ...],
  "nice_to_have_skills": ["<skill>", ...]
}`, jdText)
}

// BuildResumeParsePrompt creates the prompt that turns raw resume text into
// structured candidate data.
func (pb *PromptBuilder) BuildResumeParsePrompt(resumeText string) string {
	return fmt.Sprintf(`Parse the following resume text into a valid JSON object. Be thorough in extracting all skills.

Resume Text:
---
%s
---

Return your response in the following JSON format:
{
  "name": "<candidate name>",
  "email": "<email or empty string>",
  "phone": "<phone or empty string>",
  "skills": ["<skill>", ...],
  "experience": [{"title": "<title>", "company": "<company>", "duration": "<duration>"}, ...]
}`, resumeText)
}

package generator

import (
	"bytes"
)

// Directives appended to every generation prompt.
var Directives = []string{
	"Using lightweight base images (e.g., `python:3.12-slim`, `node:20-alpine`).",
	"Minimizing the number of layers.",
	"Ensuring efficient caching.",
	"Implementing proper `.dockerignore` file recommendations.",
	"Securing the container by limiting root permissions.",
}

// GeneratePrompt embeds description verbatim.
func GeneratePrompt(description string) string {
	var buf bytes.Buffer
	buf.WriteString("Generate a Dockerfile based on the following application details:\n\n")
	buf.WriteString(description)
	buf.WriteString("\n\nEnsure the Dockerfile follows best practices such as:\n")
	for _, d := range Directives {
		buf.WriteString("- ")
		buf.WriteString(d)
		buf.WriteString("\n")
	}
	buf.WriteString("\nOutput only the Dockerfile content.\n")
	return buf.String()
}

// RefinePrompt embeds feedback and the current Dockerfile verbatim.
func RefinePrompt(feedback, dockerfile string) string {
	var buf bytes.Buffer
	buf.WriteString("Refine the following Dockerfile based on this user feedback:\n\n")
	buf.WriteString("Feedback: ")
	buf.WriteString(feedback)
	buf.WriteString("\n\nDockerfile:\n")
	buf.WriteString(dockerfile)
	buf.WriteString("\n\nEnsure improvements include security, caching, efficiency, and best practices.\n")
	buf.WriteString("Output only the updated Dockerfile content.\n")
	return buf.String()
}

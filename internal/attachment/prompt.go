package attachment

import "fmt"

const imagePromptTemplate = `Write a caption of 5 sentences for this image. Pay special attention to any details that might be useful for someone answering the following question:
%s. But do not try to answer the question directly!
Do not add any information that is not present in the image.`

const documentPromptTemplate = `Write a caption of 5 sentences for this document. Pay special attention to any details that might be useful for someone answering the following question:
%s. But do not try to answer the question directly!
Do not add any information that is not present in the document.`

// ImagePrompt builds the caption prompt sent with an image.
func ImagePrompt(question string) string {
	return fmt.Sprintf(imagePromptTemplate, question)
}

// DocumentPrompt builds the caption prompt sent with a document.
func DocumentPrompt(question string) string {
	return fmt.Sprintf(documentPromptTemplate, question)
}

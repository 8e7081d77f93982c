package gemini

// Prompt templates for the provider's operations. Every prompt demands a
// strict JSON response so parsing stays schema-driven.

const enrichPromptTemplate = `You are a vocabulary tutor. For the English word %q produce a JSON object with exactly these fields:
{
  "definition": "a concise learner-friendly definition",
  "phonetic": "IPA transcription, without surrounding slashes",
  "translation": "the most common translation into the learner's language, if known, else empty",
  "example": "one natural example sentence using the word",
  "synonyms": ["up to four close synonyms"]
}
Respond with the JSON object only.`

const extractTermsPromptTemplate = `Extract the vocabulary worth studying from the following text. Pick single words or short fixed expressions a language learner would want to drill; skip names, numbers and trivial function words. Respond with a JSON object only:
{"terms": ["term1", "term2"]}
If nothing is worth extracting, respond with {"terms": []}.

Text:
%s`

const extractImagePrompt = `This image contains photographed text. Read it and extract the vocabulary worth studying: single words or short fixed expressions a language learner would want to drill; skip names, numbers and trivial function words. Respond with a JSON object only:
{"terms": ["term1", "term2"]}
If the image contains no usable text, respond with {"terms": []}.`

const quizPromptTemplate = `Create one multiple-choice vocabulary question for each of these terms: %s.
For each question ask for the meaning of the term. Provide exactly four answer options including the correct one, and a short context sentence using the term. Respond with a JSON object only:
{
  "questions": [
    {
      "term": "the term being tested",
      "answer": "the correct option, repeated verbatim in options",
      "options": ["four", "answer", "options", "total"],
      "context": "a sentence using the term"
    }
  ]
}`

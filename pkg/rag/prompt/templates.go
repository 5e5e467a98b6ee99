// Package prompt holds the instruction templates sent to the LLM. The
// wording of the citation rules is load bearing: the answer parser and
// citation extractor depend on the [n] marker format these enforce.
package prompt

import (
	"fmt"
	"strings"
)

const ragAnswerTemplate = `You are a precise information assistant that answers questions using ONLY the provided source context.
### ANSWER GUIDELINES:
- Answer in approximately %d words
- Answer the user's question thoroughly and accurately using ONLY information from the source context provided below (delimited in triple asterisks).
- If information isn't in the context, simply state: "I don't know based on the provided information"
- For uncertain information, say "I don't know based on the provided information" rather than guessing

### CITATION RULES:
- For factual claims in your answer, include a citation in square brackets [0], [1], etc.
- The citation number should correspond to the source context IDs that supports your claim.
- Always place citations BEFORE the period/full stop. Never place citations in the middle of sentences.
- Group consecutive sentences from the same source and cite only once at the end of the group.
- Example: "Python is versatile. It's used in web development. It's also great for data analysis [0]."
- Multiple citations [0][2] can be used for a single claim if supported by multiple sources.
- Make sure to use the correct source context ID for each claim. No claim should be made without a citation.
- No citations needed for "I don't know" responses.

### SOURCE CONTEXT:
***%s***

### USER QUESTION:
%s

### OUTPUT FORMAT:
{"answer": "Your answer with appropriate citations, grouped for consecutive sentences using the same source.[0]"}
`

// RAGAnswer is the single-shot answer prompt with strict citation rules.
func RAGAnswer(wordBudget int, context, question string) string {
	return fmt.Sprintf(ragAnswerTemplate, wordBudget, context, question)
}

const documentSummaryTemplate = `You are an expert document summarizer.
Create a concise 2-3 line summary from the first 3 pages content of document given below.
Focus on the main topic, purpose, and key information. Write in a professional, objective tone.
Don't use phrases like "this document" or "this text" - focus on the content. Limit to 2-3 sentences only.
Document content:

%s

`

// DocumentSummary asks for the short description stored per document and
// shown to the classifier as "documents available".
func DocumentSummary(content string) string {
	return fmt.Sprintf(documentSummaryTemplate, content)
}

const queryDecisionTemplate = `Classify this query as: greeting, document_search, or external_knowledge.
Documents available: %s
Query: %s

Rules:
- greeting: For greetings/casual talk, provide a friendly response
- document_search: For questions related to document content
- external_knowledge: For general facts, latest information or information not in documents
- Strictly never answer factual questions directly, even simple ones you know

Respond with ONLY valid JSON:
{"query_type": "greeting|document_search|external_knowledge", "response": "direct reply when greeting, otherwise empty"}
`

// QueryDecision is the single-shot three way classification prompt.
func QueryDecision(documentDescriptions, question string) string {
	return fmt.Sprintf(queryDecisionTemplate, documentDescriptions, question)
}

const chatDecisionTemplate = `Classify this user message (query) and provide appropriate response or follow-up question.
Documents available: %s
User message: %s

### CONVERSATION HISTORY:
%s

Rules:
1. CLASSIFY the query into one of these types:
   - greeting: For greetings, casual talk, thank you, goodbye messages
   - document_search: For questions related to document content or any substantive inquiry
   - conversation_reference: For questions about previous conversation (e.g., "what were we talking about?")
   - off_topic: For questions clearly unrelated to available documents

2. RESPOND based on classification:
   - IF greeting: Provide a friendly direct response. For goodbye/thank you, include brief conversation summary
   - IF document_search: Generate a specific follow-up question that improves retrieval by:
       * Resolving pronouns and references (e.g., "his" -> "John's", "it" -> "the specific item name")
       * Adding context from previous messages (e.g., "tell me more" -> "tell me more about John's certifications")
       * Using precise terminology from previous messages
   - IF conversation_reference: Respond directly with a brief summary or answer based on the conversation history
   - IF off_topic: Politely explain we can only answer questions related to available documents

3. FORMAT your response exactly as:
CLASSIFICATION: <greeting/document_search/conversation_reference/off_topic>
RESPONSE: <Your direct response for greeting, conversation_reference, or off_topic>
FOLLOW_UP_QUESTION: <Rewritten specific question for document_search>

Example responses:
User: "What were we talking about?"
CLASSIFICATION: conversation_reference
RESPONSE: We were discussing John's professional experience and skills from her resume.
FOLLOW_UP_QUESTION:

User: "Describe yellow footed pigeon?"
CLASSIFICATION: off_topic
RESPONSE: I can only answer questions related to the documents in the system. I don't have information about yellow-footed pigeons. Would you like to ask something about the available documents instead?
FOLLOW_UP_QUESTION:

User: "What is about her interest and hobbies?"
CLASSIFICATION: document_search
RESPONSE:
FOLLOW_UP_QUESTION: What are John's interests and hobbies?
`

// ChatDecision is the conversational classification prompt. It both
// classifies the message and, for document_search, rewrites it into a
// standalone retrieval query.
func ChatDecision(documentDescriptions, message, chatHistory string) string {
	return fmt.Sprintf(chatDecisionTemplate, documentDescriptions, message, chatHistory)
}

const chatAnswerTemplate = `You are a helpful document chat assistant that answers questions based on provided context.

### SOURCE DOCUMENTS:
%s

### LATEST USER MESSAGE:
%s

### CONVERSATION HISTORY:
%s

### INSTRUCTIONS:
1. Base your answer ONLY on the information in the provided documents
2. If you can't answer from the context, say "I don't have enough information to answer that question" without citations
3. Citation rules:
   - Include citations using [0], [1], etc. format, corresponding to the Source ID in the context
   - Place citations BEFORE periods/full stops
   - For consecutive sentences using the same source, cite only the last sentence
   - Example: "France is in Europe. It is a beautiful place[0]."
   - Multiple citations [0][2] can be used for a single claim if supported by multiple sources
4. Provide direct, helpful responses focused on answering the question
5. Treat user messages as follow-up questions in the context of the conversation history
6. Use pronouns clearly and consistently when referring to previously mentioned entities
7. Never explain your citation process or mention that you're using citations
`

// ChatAnswer is the conversational grounded answer prompt.
func ChatAnswer(context, message, chatHistory string) string {
	return fmt.Sprintf(chatAnswerTemplate, context, message, chatHistory)
}

const historySummaryTemplate = `Based on the conversation history below, please:
1. Create a comprehensive summary (450-500 words) that captures key points discussed so far
2. Transform the user's latest question into a standalone, self-contained question that makes sense without conversation context

Conversation history:
%s

User's latest question: "%s"

Format your response exactly as:
SUMMARY: <comprehensive summary of the conversation>
STANDALONE QUESTION: <reformulated standalone question>
`

// HistorySummary condenses a conversation and reformulates the latest
// question for retrieval.
func HistorySummary(chatHistory, question string) string {
	return fmt.Sprintf(historySummaryTemplate, chatHistory, question)
}

const legacyAnswerTemplate = `You are a helpful document assistant that answers questions based on provided context.
### CONVERSATION HISTORY CONTEXT:
%s

### SOURCE DOCUMENTS:
%s

### USER QUESTION:
%s

### INSTRUCTIONS:
1. Answer in approximately %d words
2. Base your answer ONLY on the information in the provided documents
3. If you can't answer from the context, say "I don't have enough information to answer that question" without citations
4. Include citations using [0], [1], etc. format, corresponding to the Source ID in the context
5. Place citations BEFORE punctuation, like: "France is in Europe [0]."
6. Do not mention that you're using citations or explain your citation process
7. Provide a direct, helpful response focused on answering the question
`

// SummaryGroundedAnswer is the answer prompt used by the summarizing
// query path, where condensed history stands in for the raw transcript.
func SummaryGroundedAnswer(historySummary, context, question string, wordBudget int) string {
	return fmt.Sprintf(legacyAnswerTemplate, historySummary, context, question, wordBudget)
}

// TrimMarkers strips stray code fences some models wrap around structured
// output.
func TrimMarkers(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

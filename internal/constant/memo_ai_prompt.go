package constant

const (
	MemoSummaryMaxTokens = 300
	MemoTagsMaxTokens    = 100
	MemoMaxTags          = 5

	// MemoPromptMaxChars bounds the memo text sent to the model.
	MemoPromptMaxChars = 8000

	MemoSummaryPrompt = `Summarize the following memo concisely in 200 characters or fewer.
Keep only the key points and leave out filler.

Memo:
%s

Summary:`

	MemoTagsPrompt = `Extract at most 5 key keywords from the following memo.
Separate keywords with commas and keep each one to a word or short phrase.

Memo:
%s

Keywords (comma separated):`
)

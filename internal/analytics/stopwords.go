package analytics

// stopWords is the fixed English stop-word set used by the word cloud.
// Contraction forms appear without apostrophes because the tokenizer strips
// punctuation before splitting ("don't" becomes "dont").
var stopWords = map[string]struct{}{}

func init() {
	words := []string{
		"i", "me", "my", "myself", "we", "our", "ours", "ourselves",
		"you", "youre", "youve", "youll", "youd", "your", "yours",
		"yourself", "yourselves", "he", "him", "his", "himself",
		"she", "shes", "her", "hers", "herself", "it", "its", "itself",
		"they", "them", "their", "theirs", "themselves",
		"what", "which", "who", "whom", "this", "that", "thatll",
		"these", "those", "am", "is", "are", "was", "were", "be",
		"been", "being", "have", "has", "had", "having", "do", "does",
		"did", "doing", "a", "an", "the", "and", "but", "if", "or",
		"because", "as", "until", "while", "of", "at", "by", "for",
		"with", "about", "against", "between", "into", "through",
		"during", "before", "after", "above", "below", "to", "from",
		"up", "down", "in", "out", "on", "off", "over", "under",
		"again", "further", "then", "once", "here", "there", "when",
		"where", "why", "how", "all", "any", "both", "each", "few",
		"more", "most", "other", "some", "such", "no", "nor", "not",
		"only", "own", "same", "so", "than", "too", "very", "can",
		"will", "just", "don", "dont", "should", "shouldve", "now",
		"ain", "aren", "arent", "couldn", "couldnt", "didn", "didnt",
		"doesn", "doesnt", "hadn", "hadnt", "hasn", "hasnt", "haven",
		"havent", "isn", "isnt", "mightn", "mightnt", "mustn",
		"mustnt", "needn", "neednt", "shan", "shant", "shouldn",
		"shouldnt", "wasn", "wasnt", "weren", "werent", "won", "wont",
		"wouldn", "wouldnt", "im", "ive", "ill", "id", "hes", "hed",
		"weve", "theyre", "theyve", "cant", "lets", "thats", "whats",
		"really", "today", "going", "got", "get", "like", "would",
	}
	for _, w := range words {
		stopWords[w] = struct{}{}
	}
}

// IsStopWord reports whether the token is in the stop-word set.
func IsStopWord(token string) bool {
	_, ok := stopWords[token]
	return ok
}

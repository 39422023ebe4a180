package outline

import (
	"fmt"
	"strings"
)

// 质量检测调优常量，产品级经验值
const (
	// SimilarityDetectThreshold 相似度报告阈值
	SimilarityDetectThreshold = 0.5
	// SimilarityRegenThreshold 相似度强制重新生成阈值
	SimilarityRegenThreshold = 0.6

	// minBulletWordCount 单条要点的最低词数
	minBulletWordCount = 8
	// minUniqueWordCount 单条要点的最低去重词数，信息密度的代理指标
	minUniqueWordCount = 6

	// topicShingleSize 主题复读检测的连续词窗口
	topicShingleSize = 4
	// topicShingleMinChars 参与复读检测的短语最小字符数
	topicShingleMinChars = 15

	// sharedShingleSize 相似度加成检测的连续词窗口
	sharedShingleSize = 3
	// sharedShingleFloor 超过该数量的共享短语触发相似度加成
	sharedShingleFloor = 2
	// sharedShingleBoost 共享短语触发的相似度加成值
	sharedShingleBoost = 0.2

	// meaningfulWordMinLen 参与相似度计算的最小词长
	meaningfulWordMinLen = 3
)

// genericPhrases 占位内容的固定禁用短语表
var genericPhrases = []string{
	"key concept about",
	"important aspect to consider",
	"related insight or application",
	"key point",
	"additional key insight",
	"additional insights",
	"core concepts and fundamentals",
}

// verbatimBadPhrases 已知劣质表达的固定禁用短语表
var verbatimBadPhrases = []string{
	"key concept about this topic",
	"important aspect to consider",
	"related insight or application",
}

// stopWords 相似度计算排除的常见虚词
var stopWords = map[string]struct{}{
	"this": {}, "that": {}, "with": {}, "from": {}, "have": {}, "will": {},
	"your": {}, "which": {}, "their": {}, "about": {}, "would": {}, "there": {},
	"could": {}, "been": {}, "other": {}, "into": {}, "more": {}, "some": {},
	"than": {}, "them": {}, "these": {}, "those": {}, "what": {}, "when": {},
	"where": {}, "they": {}, "also": {}, "such": {}, "each": {}, "over": {},
}

// Classifier 内容质量分类器，所有判定均为纯函数
type Classifier struct {
	detectThreshold float64
	regenThreshold  float64
}

// NewClassifier 创建分类器，阈值为 0 时使用默认值
func NewClassifier(detectThreshold, regenThreshold float64) *Classifier {
	if detectThreshold <= 0 {
		detectThreshold = SimilarityDetectThreshold
	}
	if regenThreshold <= 0 {
		regenThreshold = SimilarityRegenThreshold
	}
	return &Classifier{
		detectThreshold: detectThreshold,
		regenThreshold:  regenThreshold,
	}
}

// RegenThreshold 返回强制重新生成阈值
func (c *Classifier) RegenThreshold() float64 { return c.regenThreshold }

// IsGeneric 判断内容是否为占位/低信息量内容，返回诊断原因供日志使用
func (c *Classifier) IsGeneric(content []string) (bool, string) {
	if len(content) < minBullets {
		return true, fmt.Sprintf("only %d bullets", len(content))
	}

	for _, bullet := range content {
		lower := strings.ToLower(bullet)
		for _, phrase := range genericPhrases {
			if strings.Contains(lower, phrase) {
				return true, fmt.Sprintf("contains generic phrase %q", phrase)
			}
		}

		words := tokenize(bullet)
		if len(words) < minBulletWordCount {
			return true, fmt.Sprintf("bullet has %d words, need %d", len(words), minBulletWordCount)
		}

		unique := make(map[string]struct{}, len(words))
		for _, w := range words {
			unique[w] = struct{}{}
		}
		if len(unique) < minUniqueWordCount {
			return true, fmt.Sprintf("bullet has %d unique words, need %d", len(unique), minUniqueWordCount)
		}
	}

	return false, ""
}

// HasVerbatimRepetition 判断内容是否逐字复读了用户主题或包含已知劣质短语
func (c *Classifier) HasVerbatimRepetition(content []string, topic string) (bool, string) {
	joined := strings.ToLower(strings.Join(content, " "))

	for _, phrase := range verbatimBadPhrases {
		if strings.Contains(joined, phrase) {
			return true, fmt.Sprintf("contains bad phrase %q", phrase)
		}
	}

	// 主题中的 4 连词短语不得逐字出现在要点文本中
	topicWords := strings.Fields(strings.ToLower(topic))
	for i := 0; i+topicShingleSize <= len(topicWords); i++ {
		shingle := strings.Join(topicWords[i:i+topicShingleSize], " ")
		if len(shingle) > topicShingleMinChars && strings.Contains(joined, shingle) {
			return true, fmt.Sprintf("repeats topic phrase %q", shingle)
		}
	}

	return false, ""
}

// Similarity 计算两段内容的 Jaccard 相似度，范围 [0,1]
// 有效词为长度大于 3 且不在停用词表中的词；共享 3 连词短语超过 2 个时加成 0.2
// 有效词集合为空时退化为整词集合比较，相同的退化内容仍须判为重复
func (c *Classifier) Similarity(contentA, contentB []string) float64 {
	textA := strings.Join(contentA, " ")
	textB := strings.Join(contentB, " ")

	score, ok := jaccard(meaningfulWords(textA), meaningfulWords(textB))
	if !ok {
		score, ok = jaccard(wordSet(textA), wordSet(textB))
		if !ok {
			return 0
		}
	}

	if sharedShingles(textA, textB) > sharedShingleFloor {
		score += sharedShingleBoost
		if score > 1.0 {
			score = 1.0
		}
	}
	return score
}

// DuplicatePair 一对相似度达到报告阈值的幻灯片
type DuplicatePair struct {
	I     int     `json:"i"`
	J     int     `json:"j"`
	Score float64 `json:"score"`
}

// DetectDuplicates 返回所有相似度达到报告阈值的无序对 (i<j)
// 仅超过重新生成阈值的对会触发后序页重新生成
func (c *Classifier) DetectDuplicates(contents [][]string) []DuplicatePair {
	var pairs []DuplicatePair
	for i := 0; i < len(contents); i++ {
		for j := i + 1; j < len(contents); j++ {
			score := c.Similarity(contents[i], contents[j])
			if score >= c.detectThreshold {
				pairs = append(pairs, DuplicatePair{I: i, J: j, Score: score})
			}
		}
	}
	return pairs
}

// tokenize 小写化并按非字母数字切词
func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		isAlnum := r >= 'a' && r <= 'z' || r >= '0' && r <= '9'
		return !isAlnum
	})
}

// jaccard 计算两个词集的 Jaccard 系数，并集为空时第二个返回值为 false
func jaccard(setA, setB map[string]struct{}) (float64, bool) {
	union := len(setA)
	intersection := 0
	for w := range setB {
		if _, ok := setA[w]; ok {
			intersection++
		} else {
			union++
		}
	}
	if union == 0 {
		return 0, false
	}
	return float64(intersection) / float64(union), true
}

// wordSet 全量词集合，仅在有效词集合为空的退化场景使用
func wordSet(text string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, w := range tokenize(text) {
		set[w] = struct{}{}
	}
	return set
}

// meaningfulWords 提取参与相似度计算的有效词集合
func meaningfulWords(text string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, w := range tokenize(text) {
		if len(w) <= meaningfulWordMinLen {
			continue
		}
		if _, ok := stopWords[w]; ok {
			continue
		}
		set[w] = struct{}{}
	}
	return set
}

// sharedShingles 统计两段文本共享的 3 连词短语数量
func sharedShingles(textA, textB string) int {
	wordsA := tokenize(textA)
	wordsB := tokenize(textB)

	shinglesA := make(map[string]struct{})
	for i := 0; i+sharedShingleSize <= len(wordsA); i++ {
		shinglesA[strings.Join(wordsA[i:i+sharedShingleSize], " ")] = struct{}{}
	}

	seen := make(map[string]struct{})
	count := 0
	for i := 0; i+sharedShingleSize <= len(wordsB); i++ {
		s := strings.Join(wordsB[i:i+sharedShingleSize], " ")
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		if _, ok := shinglesA[s]; ok {
			count++
		}
	}
	return count
}

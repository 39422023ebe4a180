package imagesearch

import (
	"regexp"
	"strings"
)

// diagramPatterns 技术图示类内容的检索词映射，按优先级匹配
var diagramPatterns = []struct {
	re    *regexp.Regexp
	query string
}{
	{regexp.MustCompile(`(?i)\b(class\s+diagram|uml\s+class)\b`), "UML class diagram computer"},
	{regexp.MustCompile(`(?i)\b(sequence\s+diagram|uml\s+sequence)\b`), "UML sequence diagram software"},
	{regexp.MustCompile(`(?i)\b(use[\s-]?case\s+diagram)\b`), "UML use case diagram software"},
	{regexp.MustCompile(`(?i)\b(state\s+diagram|state\s+machine)\b`), "state machine diagram software"},
	{regexp.MustCompile(`(?i)\b(os\s+architecture|operating\s+system\s+architecture)\b`), "operating system architecture layers diagram"},
	{regexp.MustCompile(`(?i)\b(kernel\s+architecture|kernel\s+layers)\b`), "kernel architecture diagram layers"},
	{regexp.MustCompile(`(?i)\b(software\s+architecture|application\s+architecture)\b`), "software architecture diagram illustration"},
	{regexp.MustCompile(`(?i)\b(system\s+architecture)\b`), "system architecture diagram technology"},
	{regexp.MustCompile(`(?i)\b(microservices?\s+architecture)\b`), "microservices architecture diagram"},
	{regexp.MustCompile(`(?i)\b(cloud\s+architecture)\b`), "cloud computing architecture diagram"},
	{regexp.MustCompile(`(?i)\b(layered\s+architecture|tier\s+architecture|n-tier)\b`), "layered architecture diagram software illustration"},
	{regexp.MustCompile(`(?i)\b(er\s+diagram|entity[\s-]?relationship)\b`), "ER entity relationship database diagram"},
	{regexp.MustCompile(`(?i)\b(database\s+schema|db\s+schema)\b`), "database schema diagram illustration"},
	{regexp.MustCompile(`(?i)\b(network\s+diagram|network\s+topology)\b`), "network topology diagram illustration"},
	{regexp.MustCompile(`(?i)\b(flowchart|flow\s+chart)\b`), "flowchart process diagram illustration"},
	{regexp.MustCompile(`(?i)\b(process\s+flow|workflow)\b`), "workflow process diagram"},
	{regexp.MustCompile(`(?i)\b(data\s+flow|dfd)\b`), "data flow diagram software"},
	{regexp.MustCompile(`(?i)\b(gantt\s+chart)\b`), "gantt chart project timeline"},
	{regexp.MustCompile(`(?i)\b(block\s+diagram)\b`), "block diagram technical"},
	{regexp.MustCompile(`(?i)\b(organizational\s+chart|org\s+chart)\b`), "organizational chart structure"},
	{regexp.MustCompile(`(?i)\b(mind\s+map)\b`), "mind map diagram"},
	{regexp.MustCompile(`(?i)\b(venn\s+diagram)\b`), "venn diagram"},
	{regexp.MustCompile(`(?i)\b(api\s+design|api\s+architecture)\b`), "API architecture diagram"},
	{regexp.MustCompile(`(?i)\b(ci[\s/]?cd\s+pipeline)\b`), "CI CD pipeline diagram"},
	{regexp.MustCompile(`(?i)\b(kubernetes|k8s)\b`), "kubernetes architecture diagram"},
	{regexp.MustCompile(`(?i)\b(memory\s+management)\b`), "memory management diagram"},
	{regexp.MustCompile(`(?i)\b(process\s+scheduling)\b`), "process scheduling diagram"},
}

// techTopics 技术主题回退检索词映射
var techTopics = []struct {
	re    *regexp.Regexp
	topic string
}{
	{regexp.MustCompile(`(?i)\b(python|java|javascript|c\+\+|ruby|php)\b`), "programming code"},
	{regexp.MustCompile(`(?i)\b(machine\s+learning|deep\s+learning|neural\s+network)\b`), "artificial intelligence"},
	{regexp.MustCompile(`(?i)\b(data\s+science|analytics|big\s+data)\b`), "data science"},
	{regexp.MustCompile(`(?i)\b(web\s+development|frontend|backend)\b`), "web development"},
	{regexp.MustCompile(`(?i)\b(cloud\s+computing|aws|azure|gcp)\b`), "cloud computing"},
	{regexp.MustCompile(`(?i)\b(cybersecurity|security|encryption)\b`), "cybersecurity"},
	{regexp.MustCompile(`(?i)\b(blockchain|cryptocurrency)\b`), "blockchain technology"},
	{regexp.MustCompile(`(?i)\b(iot|internet\s+of\s+things)\b`), "IoT technology"},
	{regexp.MustCompile(`(?i)\b(devops|automation)\b`), "DevOps"},
	{regexp.MustCompile(`(?i)\b(mobile\s+development|android|ios)\b`), "mobile development"},
}

var diagramKeywords = []string{
	"diagram", "architecture", "flowchart", "schema", "chart",
	"graph", "topology", "illustration", "structure", "model",
	"uml", "network", "system", "design", "workflow",
	"layer", "kernel", "process", "memory",
}

// IsDiagramQuery 判断查询词是否在找图示/插画类图片
func IsDiagramQuery(query string) bool {
	q := strings.ToLower(query)
	for _, kw := range diagramKeywords {
		if strings.Contains(q, kw) {
			return true
		}
	}
	return false
}

// BuildQuery 根据幻灯片内容构造检索词
// 优先级：显式查询 > 图示类型识别 > 技术主题识别 > 标题关键词 > 通用兜底
func BuildQuery(title string, content []string, provided string) string {
	if q := strings.TrimSpace(provided); q != "" {
		return q
	}

	fullText := title + " " + strings.Join(content, " ")

	for _, p := range diagramPatterns {
		if p.re.MatchString(fullText) {
			return p.query
		}
	}

	for _, t := range techTopics {
		if t.re.MatchString(fullText) {
			return t.topic
		}
	}

	var keywords []string
	for _, w := range strings.Fields(strings.ToLower(title)) {
		if len(w) > 3 {
			keywords = append(keywords, w)
		}
		if len(keywords) == 3 {
			break
		}
	}
	if len(keywords) > 0 {
		return strings.Join(keywords, " ")
	}

	return "business presentation professional"
}

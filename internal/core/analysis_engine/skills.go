package analysis_engine

import "strings"

// skillVocabulary is the curated skill list matched against resume and job
// description text. Entries keep their display casing; matching is
// case-insensitive substring search, so entries stay specific enough not to
// fire inside unrelated words (hence "Golang", not "Go").
var skillVocabulary = []string{
	"Python", "Java", "JavaScript", "TypeScript", "Golang", "Rust", "Ruby",
	"PHP", "Scala", "Kotlin", "Swift", "C++", "C#", "Objective-C", "Perl",
	"SQL", "NoSQL", "PostgreSQL", "MySQL", "MongoDB", "DynamoDB", "Redis",
	"Elasticsearch", "Cassandra", "Oracle", "SQLite",
	"AWS", "Azure", "GCP", "Kubernetes", "Docker", "Terraform", "Ansible",
	"Jenkins", "CircleCI", "GitHub Actions", "CloudFormation", "Serverless",
	"Lambda", "EC2", "S3", "ECS", "EKS",
	"React", "Angular", "Vue", "Next.js", "Node.js", "Express", "Django",
	"Flask", "FastAPI", "Spring", "Rails", ".NET", "GraphQL", "REST",
	"gRPC", "Kafka", "RabbitMQ", "Spark", "Hadoop", "Airflow", "Snowflake",
	"Tableau", "Power BI", "Pandas", "NumPy", "TensorFlow", "PyTorch",
	"Scikit-learn", "Machine Learning", "Deep Learning", "NLP", "Computer Vision",
	"Data Engineering", "ETL", "CI/CD", "Microservices", "DevOps",
	"Linux", "Git", "Agile", "Scrum", "JIRA",
	"Project Management", "Product Management", "Leadership", "Communication",
}

// MatchSkills returns vocabulary entries present in the text, deduplicated
// case-insensitively, in vocabulary order.
func MatchSkills(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	lower := strings.ToLower(text)

	seen := make(map[string]bool, 16)
	var found []string
	for _, skill := range skillVocabulary {
		key := strings.ToLower(skill)
		if seen[key] {
			continue
		}
		if strings.Contains(lower, key) {
			seen[key] = true
			found = append(found, skill)
		}
	}
	return found
}

// toSkillSet lowercases a skill list into a membership set.
func toSkillSet(skills []string) map[string]bool {
	set := make(map[string]bool, len(skills))
	for _, s := range skills {
		set[strings.ToLower(s)] = true
	}
	return set
}

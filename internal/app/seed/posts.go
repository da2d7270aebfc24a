package seed

// SamplePost is the request body the seeder sends to POST /posts.
type SamplePost struct {
	Title   string   `json:"title"`
	Desc    string   `json:"desc"`
	Content string   `json:"content"`
	Tags    []string `json:"tags"`
}

var SamplePosts = []SamplePost{
	{
		Title:   "Building Scalable Microservices with Go",
		Desc:    "A guide to building robust, scalable microservices with real-world examples and practical patterns.",
		Content: "Microservices architecture has become a cornerstone of modern application development, offering scalability and maintainability. Small services with clear boundaries and explicit dependencies can handle enterprise-level demands.",
		Tags:    []string{"Backend", "Full stack", "OpenSource"},
	},
	{
		Title:   "Mastering React Performance Optimization",
		Desc:    "Deep dive into React performance optimization techniques, from basic memoization to advanced rendering strategies.",
		Content: "React performance optimization requires a deep understanding of the framework's rendering mechanism and the browser's rendering pipeline. Modern web applications demand exceptional performance, and React provides numerous tools to achieve it.",
		Tags:    []string{"Frontend", "Career", "Full stack"},
	},
	{
		Title:   "The Future of Web Development: What's Next?",
		Desc:    "Exploring emerging technologies and trends that will shape the future of web development.",
		Content: "The web development landscape is evolving at an unprecedented pace, driven by technological advancements and changing user expectations. Understanding these trends is crucial for developers who want to stay ahead of the curve.",
		Tags:    []string{"Frontend", "Backend", "Career"},
	},
	{
		Title:   "Contributing to Open Source: A Developer's Guide",
		Desc:    "How to start contributing to open source projects, from finding the right project to making your first pull request.",
		Content: "Contributing to open source is one of the most rewarding experiences a developer can have. It's an opportunity to work on real-world projects, learn from experienced developers, and give back to the community.",
		Tags:    []string{"OpenSource", "Career", "Full stack"},
	},
	{
		Title:   "API Design Best Practices for Modern Applications",
		Desc:    "Designing robust, scalable, and user-friendly APIs that developers will love to use and maintain.",
		Content: "API design directly impacts the success of your applications. A well-designed API can accelerate development, reduce maintenance costs, and provide a better experience.",
		Tags:    []string{"Backend", "Full stack", "OpenSource"},
	},
	{
		Title:   "State Management in Large React Applications",
		Desc:    "State management strategies for complex React applications, from local state to global stores.",
		Content: "State management is one of the most challenging aspects of building large React applications. As applications grow in complexity, managing state effectively becomes crucial for code quality and performance.",
		Tags:    []string{"Frontend", "Full stack", "Career"},
	},
	{
		Title:   "Database Design Patterns for Scalable Systems",
		Desc:    "Database design patterns and strategies for high-performance systems that serve millions of users.",
		Content: "Database design is a critical component of any scalable system, and the choices you make early in development have long-lasting implications for performance, maintainability, and cost.",
		Tags:    []string{"Backend", "Career", "OpenSource"},
	},
	{
		Title:   "Building Accessible Web Applications",
		Desc:    "Creating web applications that are accessible to all users, including those with disabilities.",
		Content: "Web accessibility is not just a legal requirement or a nice-to-have feature. It is a fundamental part of creating inclusive digital experiences that work for everyone.",
		Tags:    []string{"Frontend", "Career", "OpenSource"},
	},
	{
		Title:   "DevOps Practices for Modern Development Teams",
		Desc:    "DevOps practices and tools that help teams streamline development, deployment, and operations.",
		Content: "DevOps has evolved from a buzzword into an approach that bridges development and operations, enabling teams to deliver software faster and more reliably.",
		Tags:    []string{"Backend", "Full stack", "Career"},
	},
	{
		Title:   "The Art of Code Review: Best Practices",
		Desc:    "Using code review to improve code quality, share knowledge, and build stronger teams.",
		Content: "Code review is one of the most important practices in software development. It acts as a quality gate and a knowledge sharing mechanism at the same time.",
		Tags:    []string{"OpenSource", "Career", "Full stack"},
	},
}

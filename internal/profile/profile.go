// Package profile classifies a working directory into a project profile
// and maps each profile to the behaviors it governs: dependency install,
// cleanup targets, background services, and next-step guidance.
package profile

// Profile identifies the detected project type. Exactly one profile is
// active per invocation; both the initializer and the finalizer consult
// the same classification so they can never disagree.
type Profile string

const (
	Fullstack  Profile = "fullstack"
	NextJS     Profile = "nextjs"
	React      Profile = "react"
	NodeJS     Profile = "nodejs"
	JavaScript Profile = "javascript"
	Django     Profile = "django"
	Flask      Profile = "flask"
	FastAPI    Profile = "fastapi"
	Python     Profile = "python"
	Rust       Profile = "rust"
	Go         Profile = "go"
	Java       Profile = "java"
	Ruby       Profile = "ruby"
	Generic    Profile = "generic"
)

// All lists every profile in declaration order.
func All() []Profile {
	return []Profile{
		Fullstack, NextJS, React, NodeJS, JavaScript,
		Django, Flask, FastAPI, Python,
		Rust, Go, Java, Ruby, Generic,
	}
}

// String returns the profile tag.
func (p Profile) String() string {
	return string(p)
}

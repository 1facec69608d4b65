package main

var (
	PageTitle = "Work Experience"

	Intro = `A timeline of the teams I have worked with and the products we shipped.
	Click any screenshot to open the project, flip through its images, and see the stack behind it.`

	TechStackHeading = "Tech Stack"

	CloseLabel    = "Close"
	PrevLabel     = "Previous image"
	NextLabel     = "Next image"
	DotLabel      = "Show image"
	UnknownDotMsg = "That image does not exist for this project."
)

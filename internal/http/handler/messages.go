package handler

import "fmt"

const (
	jsonKeySuccess = "success"

	msgContentTypeJSONRequired = "Content-Type must be application/json"
	msgInvalidRequestBody      = "invalid request body"
	msgNoFileAttached          = "No file attached"
	msgIncorrectCredentials    = "Incorrect username or password"
	msgNoSuchUser              = "There is no such a user"
	msgEmptyBatch              = "the request body must contain at least one item"

	msgPasswordProcessFail = "failed to process password"

	notFoundWithIDFmt       = "There is no such a %s with the id of %s"
	collegeNameExistsFmt    = `A college with the name "%s" already exists`
	departmentNameExistsFmt = `A department with the name "%s" already exists`
	usernameExistsFmt       = `A user with the username "%s" already exists`
	studentEmailExistsFmt   = `A student with the email of "%s" already exists`
	loginUnknownUsernameFmt = `A user with the username of "%s" does not exist`
	requiredPersonDateField = "Person.dateOfBirth: is required"
	yearInFutureFmt         = "year: must be less than or equal to %d"
	invalidQueryParamFmt    = "%s: is invalid"
)

func notFoundWithID(resource, id string) string {
	return fmt.Sprintf(notFoundWithIDFmt, resource, id)
}

func collegeNameExists(name string) string {
	return fmt.Sprintf(collegeNameExistsFmt, name)
}

func departmentNameExists(name string) string {
	return fmt.Sprintf(departmentNameExistsFmt, name)
}

func usernameExists(username string) string {
	return fmt.Sprintf(usernameExistsFmt, username)
}

func studentEmailExists(email string) string {
	return fmt.Sprintf(studentEmailExistsFmt, email)
}

func loginUnknownUsername(username string) string {
	return fmt.Sprintf(loginUnknownUsernameFmt, username)
}

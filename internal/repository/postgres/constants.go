package postgres

import (
	"fmt"
	"time"
)

const (
	poolHealthCheckPeriod = time.Minute
	poolMaxConnLifetime   = time.Hour
	poolMaxConnIdleTime   = 30 * time.Minute
	dbPingTimeout         = 5 * time.Second

	errCollegeNotFound    = "college not found"
	errDepartmentNotFound = "department not found"
	errSupervisorNotFound = "supervisor not found"
	errStudentNotFound    = "student not found"
	errProjectNotFound    = "project not found"
	errUserNotFound       = "user not found"
	errPermissionNotFound = "permission not found"

	errCollegeNameExists = "college with this name already exists"
	errUsernameExists    = "user with this username already exists"

	errFailedParseDatabaseConfigFmt  = "failed to parse database config: %w"
	errFailedCreateConnectionPoolFmt = "failed to create connection pool: %w"
	errFailedPingDatabaseFmt         = "failed to ping database: %w"

	errFailedStartTransactionFmt  = "failed to start transaction: %w"
	errFailedCommitTransactionFmt = "failed to commit transaction: %w"

	errFailedCreateCollegeFmt = "failed to create college: %w"
	errFailedGetCollegeFmt    = "failed to get college: %w"
	errFailedListCollegesFmt  = "failed to list colleges: %w"
	errFailedScanCollegeFmt   = "failed to scan college: %w"
	errFailedUpdateCollegeFmt = "failed to update college: %w"
	errFailedDeleteCollegeFmt = "failed to delete college: %w"
	errIterateCollegesFmt     = "error iterating colleges: %w"

	errFailedCreateDepartmentFmt = "failed to create department: %w"
	errFailedGetDepartmentFmt    = "failed to get department: %w"
	errFailedListDepartmentsFmt  = "failed to list departments: %w"
	errFailedScanDepartmentFmt   = "failed to scan department: %w"
	errFailedUpdateDepartmentFmt = "failed to update department: %w"
	errFailedDeleteDepartmentFmt = "failed to delete department: %w"
	errIterateDepartmentsFmt     = "error iterating departments: %w"

	errFailedCreatePersonFmt = "failed to create person: %w"
	errFailedUpdatePersonFmt = "failed to update person: %w"

	errFailedCreateSupervisorFmt = "failed to create supervisor: %w"
	errFailedGetSupervisorFmt    = "failed to get supervisor: %w"
	errFailedListSupervisorsFmt  = "failed to list supervisors: %w"
	errFailedScanSupervisorFmt   = "failed to scan supervisor: %w"
	errFailedDeleteSupervisorFmt = "failed to delete supervisor: %w"
	errIterateSupervisorsFmt     = "error iterating supervisors: %w"

	errFailedCreateStudentFmt = "failed to create student: %w"
	errFailedGetStudentFmt    = "failed to get student: %w"
	errFailedListStudentsFmt  = "failed to list students: %w"
	errFailedScanStudentFmt   = "failed to scan student: %w"
	errFailedUpdateStudentFmt = "failed to update student: %w"
	errFailedDeleteStudentFmt = "failed to delete student: %w"
	errIterateStudentsFmt     = "error iterating students: %w"

	errFailedCreateProjectFmt = "failed to create project: %w"
	errFailedGetProjectFmt    = "failed to get project: %w"
	errFailedListProjectsFmt  = "failed to list projects: %w"
	errFailedScanProjectFmt   = "failed to scan project: %w"
	errFailedUpdateProjectFmt = "failed to update project: %w"
	errFailedDeleteProjectFmt = "failed to delete project: %w"
	errIterateProjectsFmt     = "error iterating projects: %w"

	errFailedCreateUserFmt      = "failed to create user: %w"
	errFailedGetUserFmt         = "failed to get user: %w"
	errFailedListUsersFmt       = "failed to list users: %w"
	errFailedScanUserFmt        = "failed to scan user: %w"
	errFailedUpdateUserFmt      = "failed to update user: %w"
	errFailedDeleteUserFmt      = "failed to delete user: %w"
	errFailedUpdateTokenFmt     = "failed to update user token: %w"
	errIterateUsersFmt          = "error iterating users: %w"
	errFailedCreatePermFmt      = "failed to create permission: %w"
	errFailedGetPermFmt         = "failed to get permission: %w"
	errFailedListPermsFmt       = "failed to list permissions: %w"
	errFailedScanPermFmt        = "failed to scan permission: %w"
	errFailedUpdatePermFmt      = "failed to update permission: %w"
	errFailedDeletePermFmt      = "failed to delete permission: %w"
	errFailedCheckPermFmt       = "failed to check permission: %w"
	errIteratePermsFmt          = "error iterating permissions: %w"
	errFailedListProjStudsFmt   = "failed to list project students: %w"
	errFailedListSupProjectsFmt = "failed to list supervisor projects: %w"
)

var (
	errFailedParseDatabaseConfig  = func(err error) error { return fmt.Errorf(errFailedParseDatabaseConfigFmt, err) }
	errFailedCreateConnectionPool = func(err error) error { return fmt.Errorf(errFailedCreateConnectionPoolFmt, err) }
	errFailedPingDatabase         = func(err error) error { return fmt.Errorf(errFailedPingDatabaseFmt, err) }

	errFailedStartTransaction  = func(err error) error { return fmt.Errorf(errFailedStartTransactionFmt, err) }
	errFailedCommitTransaction = func(err error) error { return fmt.Errorf(errFailedCommitTransactionFmt, err) }

	errFailedCreateCollege = func(err error) error { return fmt.Errorf(errFailedCreateCollegeFmt, err) }
	errFailedGetCollege    = func(err error) error { return fmt.Errorf(errFailedGetCollegeFmt, err) }
	errFailedListColleges  = func(err error) error { return fmt.Errorf(errFailedListCollegesFmt, err) }
	errFailedScanCollege   = func(err error) error { return fmt.Errorf(errFailedScanCollegeFmt, err) }
	errFailedUpdateCollege = func(err error) error { return fmt.Errorf(errFailedUpdateCollegeFmt, err) }
	errFailedDeleteCollege = func(err error) error { return fmt.Errorf(errFailedDeleteCollegeFmt, err) }
	errIterateColleges     = func(err error) error { return fmt.Errorf(errIterateCollegesFmt, err) }

	errFailedCreateDepartment = func(err error) error { return fmt.Errorf(errFailedCreateDepartmentFmt, err) }
	errFailedGetDepartment    = func(err error) error { return fmt.Errorf(errFailedGetDepartmentFmt, err) }
	errFailedListDepartments  = func(err error) error { return fmt.Errorf(errFailedListDepartmentsFmt, err) }
	errFailedScanDepartment   = func(err error) error { return fmt.Errorf(errFailedScanDepartmentFmt, err) }
	errFailedUpdateDepartment = func(err error) error { return fmt.Errorf(errFailedUpdateDepartmentFmt, err) }
	errFailedDeleteDepartment = func(err error) error { return fmt.Errorf(errFailedDeleteDepartmentFmt, err) }
	errIterateDepartments     = func(err error) error { return fmt.Errorf(errIterateDepartmentsFmt, err) }

	errFailedCreatePerson = func(err error) error { return fmt.Errorf(errFailedCreatePersonFmt, err) }
	errFailedUpdatePerson = func(err error) error { return fmt.Errorf(errFailedUpdatePersonFmt, err) }

	errFailedCreateSupervisor = func(err error) error { return fmt.Errorf(errFailedCreateSupervisorFmt, err) }
	errFailedGetSupervisor    = func(err error) error { return fmt.Errorf(errFailedGetSupervisorFmt, err) }
	errFailedListSupervisors  = func(err error) error { return fmt.Errorf(errFailedListSupervisorsFmt, err) }
	errFailedScanSupervisor   = func(err error) error { return fmt.Errorf(errFailedScanSupervisorFmt, err) }
	errFailedDeleteSupervisor = func(err error) error { return fmt.Errorf(errFailedDeleteSupervisorFmt, err) }
	errIterateSupervisors     = func(err error) error { return fmt.Errorf(errIterateSupervisorsFmt, err) }

	errFailedCreateStudent = func(err error) error { return fmt.Errorf(errFailedCreateStudentFmt, err) }
	errFailedGetStudent    = func(err error) error { return fmt.Errorf(errFailedGetStudentFmt, err) }
	errFailedListStudents  = func(err error) error { return fmt.Errorf(errFailedListStudentsFmt, err) }
	errFailedScanStudent   = func(err error) error { return fmt.Errorf(errFailedScanStudentFmt, err) }
	errFailedUpdateStudent = func(err error) error { return fmt.Errorf(errFailedUpdateStudentFmt, err) }
	errFailedDeleteStudent = func(err error) error { return fmt.Errorf(errFailedDeleteStudentFmt, err) }
	errIterateStudents     = func(err error) error { return fmt.Errorf(errIterateStudentsFmt, err) }

	errFailedCreateProject = func(err error) error { return fmt.Errorf(errFailedCreateProjectFmt, err) }
	errFailedGetProject    = func(err error) error { return fmt.Errorf(errFailedGetProjectFmt, err) }
	errFailedListProjects  = func(err error) error { return fmt.Errorf(errFailedListProjectsFmt, err) }
	errFailedScanProject   = func(err error) error { return fmt.Errorf(errFailedScanProjectFmt, err) }
	errFailedUpdateProject = func(err error) error { return fmt.Errorf(errFailedUpdateProjectFmt, err) }
	errFailedDeleteProject = func(err error) error { return fmt.Errorf(errFailedDeleteProjectFmt, err) }
	errIterateProjects     = func(err error) error { return fmt.Errorf(errIterateProjectsFmt, err) }

	errFailedCreateUser  = func(err error) error { return fmt.Errorf(errFailedCreateUserFmt, err) }
	errFailedGetUser     = func(err error) error { return fmt.Errorf(errFailedGetUserFmt, err) }
	errFailedListUsers   = func(err error) error { return fmt.Errorf(errFailedListUsersFmt, err) }
	errFailedScanUser    = func(err error) error { return fmt.Errorf(errFailedScanUserFmt, err) }
	errFailedUpdateUser  = func(err error) error { return fmt.Errorf(errFailedUpdateUserFmt, err) }
	errFailedDeleteUser  = func(err error) error { return fmt.Errorf(errFailedDeleteUserFmt, err) }
	errFailedUpdateToken = func(err error) error { return fmt.Errorf(errFailedUpdateTokenFmt, err) }
	errIterateUsers      = func(err error) error { return fmt.Errorf(errIterateUsersFmt, err) }

	errFailedCreatePerm = func(err error) error { return fmt.Errorf(errFailedCreatePermFmt, err) }
	errFailedGetPerm    = func(err error) error { return fmt.Errorf(errFailedGetPermFmt, err) }
	errFailedListPerms  = func(err error) error { return fmt.Errorf(errFailedListPermsFmt, err) }
	errFailedScanPerm   = func(err error) error { return fmt.Errorf(errFailedScanPermFmt, err) }
	errFailedUpdatePerm = func(err error) error { return fmt.Errorf(errFailedUpdatePermFmt, err) }
	errFailedDeletePerm = func(err error) error { return fmt.Errorf(errFailedDeletePermFmt, err) }
	errFailedCheckPerm  = func(err error) error { return fmt.Errorf(errFailedCheckPermFmt, err) }
	errIteratePerms     = func(err error) error { return fmt.Errorf(errIteratePermsFmt, err) }

	errFailedListProjectStudents    = func(err error) error { return fmt.Errorf(errFailedListProjStudsFmt, err) }
	errFailedListSupervisorProjects = func(err error) error { return fmt.Errorf(errFailedListSupProjectsFmt, err) }
)

// Package fixtures holds the static demo dataset served when the complaints
// backend cannot be reached. Timestamps are relative to the time passed in so
// the dataset always looks recent.
package fixtures

import (
	"time"

	"github.com/brocode/complaint-portal/internal/core/domain"
)

const day = 24 * time.Hour

// Set implements ports.FixtureSource.
type Set struct{}

func New() Set { return Set{} }

type complaintSeed struct {
	id          string
	title       string
	description string
	category    domain.Category
	status      domain.ComplaintStatus
	priority    domain.Priority
	createdAgo  time.Duration
	updatedAgo  time.Duration
	userName    string
	userEmail   string
}

var complaintSeeds = []complaintSeed{
	{
		id:          "1",
		title:       "Internet Connection Issues in Lab 3",
		description: "The internet connection in Lab 3 has been very unstable for the past week. It frequently disconnects during online sessions, making it difficult to complete assignments and attend virtual meetings. This is affecting multiple students working in that lab.",
		category:    domain.CategoryFacilities,
		status:      domain.StatusPending,
		priority:    domain.PriorityHigh,
		createdAgo:  2 * day,
		updatedAgo:  2 * day,
		userName:    "John Smith",
		userEmail:   "john.smith@example.com",
	},
	{
		id:          "2",
		title:       "Mentor Not Responding to Messages",
		description: "I have sent multiple messages to my assigned mentor over the past two weeks regarding my project progress, but I have not received any response. This is delaying my project timeline and I need guidance on the next steps.",
		category:    domain.CategoryMentor,
		status:      domain.StatusInProgress,
		priority:    domain.PriorityMedium,
		createdAgo:  5 * day,
		updatedAgo:  1 * day,
		userName:    "Sarah Johnson",
		userEmail:   "sarah.j@example.com",
	},
	{
		id:          "3",
		title:       "Task Deadline Extension Request",
		description: "I would like to request an extension for the current sprint task. I encountered unexpected technical difficulties that required additional research and troubleshooting. I need an extra 3 days to complete the task properly.",
		category:    domain.CategoryTask,
		status:      domain.StatusResolved,
		priority:    domain.PriorityMedium,
		createdAgo:  10 * day,
		updatedAgo:  3 * day,
		userName:    "Michael Chen",
		userEmail:   "michael.chen@example.com",
	},
	{
		id:          "4",
		title:       "Air Conditioning Not Working",
		description: "The air conditioning unit in the main study area has been completely non-functional for the past 3 days. The room temperature is very uncomfortable, especially during afternoon hours. This is affecting the learning environment.",
		category:    domain.CategoryFacilities,
		status:      domain.StatusPending,
		priority:    domain.PriorityUrgent,
		createdAgo:  1 * day,
		updatedAgo:  1 * day,
		userName:    "Emily Davis",
		userEmail:   "emily.davis@example.com",
	},
	{
		id:          "5",
		title:       "Peer Collaboration Difficulties",
		description: "I am having trouble collaborating with my team member on the group project. They are not contributing equally and missing scheduled meetings. I have tried to communicate but the situation is not improving.",
		category:    domain.CategoryPeer,
		status:      domain.StatusInProgress,
		priority:    domain.PriorityHigh,
		createdAgo:  7 * day,
		updatedAgo:  2 * day,
		userName:    "David Wilson",
		userEmail:   "david.wilson@example.com",
	},
	{
		id:          "6",
		title:       "Certificate Request Processing",
		description: "I submitted a request for my course completion certificate two weeks ago, but I have not received any update on the processing status. I need this certificate urgently for job applications.",
		category:    domain.CategoryAdministrative,
		status:      domain.StatusInProgress,
		priority:    domain.PriorityHigh,
		createdAgo:  14 * day,
		updatedAgo:  4 * day,
		userName:    "Lisa Anderson",
		userEmail:   "lisa.anderson@example.com",
	},
	{
		id:          "7",
		title:       "Project Feedback Needed",
		description: "I completed my final project submission last week and would appreciate detailed feedback from my mentor. This will help me understand areas for improvement before the next phase.",
		category:    domain.CategoryMentor,
		status:      domain.StatusResolved,
		priority:    domain.PriorityLow,
		createdAgo:  12 * day,
		updatedAgo:  5 * day,
		userName:    "Robert Taylor",
		userEmail:   "robert.taylor@example.com",
	},
	{
		id:          "8",
		title:       "Workspace Booking System Not Working",
		description: "The online workspace booking system has been showing errors when trying to reserve study rooms. The page loads but throws an error when submitting the booking form. This has been happening for 4 days.",
		category:    domain.CategoryFacilities,
		status:      domain.StatusPending,
		priority:    domain.PriorityMedium,
		createdAgo:  4 * day,
		updatedAgo:  4 * day,
		userName:    "Jessica Martinez",
		userEmail:   "jessica.m@example.com",
	},
	{
		id:          "9",
		title:       "Task Requirements Unclear",
		description: "The requirements for the current sprint task are not clearly defined. The task description is vague and I am unsure about the expected deliverables. Could someone clarify the requirements?",
		category:    domain.CategoryTask,
		status:      domain.StatusResolved,
		priority:    domain.PriorityMedium,
		createdAgo:  8 * day,
		updatedAgo:  6 * day,
		userName:    "James Brown",
		userEmail:   "james.brown@example.com",
	},
	{
		id:          "10",
		title:       "Team Member Not Participating",
		description: "One of my team members has not been participating in group discussions or completing their assigned tasks. This is affecting our project progress and team morale.",
		category:    domain.CategoryPeer,
		status:      domain.StatusInProgress,
		priority:    domain.PriorityHigh,
		createdAgo:  6 * day,
		updatedAgo:  1 * day,
		userName:    "Amanda White",
		userEmail:   "amanda.white@example.com",
	},
	{
		id:          "11",
		title:       "Mentor Session Scheduling Conflict",
		description: "I have been trying to schedule a one-on-one session with my mentor, but our available times do not align. The mentor's calendar shows limited availability. Could we find an alternative solution?",
		category:    domain.CategoryMentor,
		status:      domain.StatusPending,
		priority:    domain.PriorityLow,
		createdAgo:  3 * day,
		updatedAgo:  3 * day,
		userName:    "Christopher Lee",
		userEmail:   "chris.lee@example.com",
	},
	{
		id:          "12",
		title:       "Transcript Request Delay",
		description: "I requested an official transcript three weeks ago for graduate school applications. The deadline for my applications is approaching and I need the transcript urgently.",
		category:    domain.CategoryAdministrative,
		status:      domain.StatusResolved,
		priority:    domain.PriorityUrgent,
		createdAgo:  21 * day,
		updatedAgo:  2 * day,
		userName:    "Nicole Garcia",
		userEmail:   "nicole.garcia@example.com",
	},
}

// Complaints returns a fresh copy of the twelve demo complaints.
func (Set) Complaints(now time.Time) []domain.Complaint {
	out := make([]domain.Complaint, 0, len(complaintSeeds))
	for _, s := range complaintSeeds {
		out = append(out, domain.Complaint{
			ID:          s.id,
			Title:       s.title,
			Description: s.description,
			Category:    s.category,
			Status:      s.status,
			Priority:    s.priority,
			CreatedAt:   now.Add(-s.createdAgo),
			UpdatedAt:   now.Add(-s.updatedAgo),
			User: domain.Submitter{
				ID:    "user" + s.id,
				Name:  s.userName,
				Email: s.userEmail,
			},
		})
	}
	return out
}

// Notifications returns the demo notifications, newest first.
func (Set) Notifications(now time.Time) []domain.Notification {
	return []domain.Notification{
		{
			ID:             "1",
			Type:           domain.NotificationStatusUpdate,
			Title:          "Status Update",
			Message:        `Your complaint "Internet Connection Issues in Lab 3" has been updated to "In Progress"`,
			ComplaintID:    "1",
			ComplaintTitle: "Internet Connection Issues in Lab 3",
			Timestamp:      now.Add(-2 * time.Hour),
		},
		{
			ID:             "2",
			Type:           domain.NotificationMessage,
			Title:          "New Message",
			Message:        `Staff member replied to your complaint: "We are investigating the issue and will update you soon."`,
			ComplaintID:    "2",
			ComplaintTitle: "Mentor Not Responding to Messages",
			Timestamp:      now.Add(-5 * time.Hour),
		},
		{
			ID:             "3",
			Type:           domain.NotificationStatusUpdate,
			Title:          "Status Update",
			Message:        `Your complaint "Task Deadline Extension Request" has been resolved`,
			ComplaintID:    "3",
			ComplaintTitle: "Task Deadline Extension Request",
			Timestamp:      now.Add(-1 * day),
		},
		{
			ID:             "4",
			Type:           domain.NotificationMessage,
			Title:          "New Message",
			Message:        `Staff member added a note: "Extension approved. Please submit by the new deadline."`,
			ComplaintID:    "3",
			ComplaintTitle: "Task Deadline Extension Request",
			Timestamp:      now.Add(-1 * day),
			Read:           true,
		},
		{
			ID:             "5",
			Type:           domain.NotificationStatusUpdate,
			Title:          "Status Update",
			Message:        `Your complaint "Air Conditioning Not Working" is now pending review`,
			ComplaintID:    "4",
			ComplaintTitle: "Air Conditioning Not Working",
			Timestamp:      now.Add(-2 * day),
			Read:           true,
		},
		{
			ID:             "6",
			Type:           domain.NotificationMessage,
			Title:          "New Message",
			Message:        `Staff member replied: "We have scheduled maintenance for tomorrow."`,
			ComplaintID:    "4",
			ComplaintTitle: "Air Conditioning Not Working",
			Timestamp:      now.Add(-3 * day),
			Read:           true,
		},
	}
}

package notifications

import "fmt"

func buildAdminNotification(sub ContactSubmission) (subject, body string) {
	subject = fmt.Sprintf("New Contact Form Submission: %s", sub.Subject)
	body = fmt.Sprintf(`You have received a new message from the contact form:

Name: %s %s
Email: %s
Phone: %s
Company: %s
Subject: %s

Message:
%s
`, sub.FirstName, sub.LastName, sub.Email, sub.Phone, sub.Company, sub.Subject, sub.Message)
	return subject, body
}

func buildUserAcknowledgment(sub ContactSubmission) (subject, body string) {
	subject = "Thank You for Contacting Pixdot!"
	body = fmt.Sprintf(`Hi %s,

Thank you for reaching out to Pixdot!

We have received your message, and our team will get back to you shortly. We appreciate your interest and look forward to connecting with you soon.

Need urgent help? Call us at +91-87789 96278, 87789 64644

Meanwhile, feel free to explore our recent work:
Website: www.pixdotsolutins.com

Have a great day!
- Team Pixdot
`, sub.FirstName)
	return subject, body
}

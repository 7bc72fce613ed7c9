package constants

// Roles
const (
	ROLE_CUSTOMER = "customer"
	ROLE_CANTEEN  = "canteen"
	ROLE_ADMIN    = "admin"
)

// Canteen request statuses
const (
	REQUEST_PENDING  = "pending"
	REQUEST_APPROVED = "approved"
	REQUEST_REJECTED = "rejected"
)

// Order statuses
const (
	ORDER_PENDING   = "pending"
	ORDER_CONFIRMED = "confirmed"
	ORDER_PREPARING = "preparing"
	ORDER_READY     = "ready"
	ORDER_DELIVERED = "delivered"
	ORDER_CANCELLED = "cancelled"
)

// Payment statuses
const (
	PAYMENT_PENDING  = "pending"
	PAYMENT_PAID     = "paid"
	PAYMENT_FAILED   = "failed"
	PAYMENT_REFUNDED = "refunded"
)

const DEFAULT_REJECTION_REASON = "No reason provided"

// Response messages
const (
	ERROR_INPUT           = "Invalid input"
	ERROR_INTERNAL_ERROR  = "Internal server error"
	INVALID_USERNAME      = "Username does not exist"
	INVALID_PASSWORD      = "Incorrect password"
	INCORRECT_ROLE        = "Incorrect role"
	ACCOUNT_NOT_ACTIVE    = "Account is deactivated"
	NOT_ADMIN             = "You do not have permission to perform this action"
	USERNAME_TAKEN        = "Username already taken"
	EMAIL_TAKEN           = "Email already registered"
	ACCOUNT_NOT_FOUND     = "Account not found. Please log in again."
	REQUEST_NOT_FOUND     = "Request not found"
	REQUEST_PENDING_MSG   = "You have a pending request. Please wait for admin review."
	REQUEST_APPROVED_MSG  = "Your canteen is already approved."
	LICENSE_EXISTS        = "License number already exists"
	CANTEEN_NOT_APPROVED  = "Unauthorized: Canteen not found or not approved"
	MENU_NOT_FOUND        = "Menu item not found"
	EMPTY_ORDER           = "Items array is required and cannot be empty"
	ORDER_NOT_FOUND       = "Order not found"
	INVALID_STATUS        = "Invalid status value"
	INVALID_TRANSITION    = "Order status transition is not allowed"
	TOTAL_MISMATCH        = "Total amount does not match order items"
	INVALID_RESET_CODE    = "Invalid reset code"
	INVALID_RATING        = "Rating must be between 1 and 5"
	INVALID_IMAGE_URL     = "Please provide a valid image URL"
	INVALID_PHONE         = "Please enter a valid 10-digit phone number"
)
